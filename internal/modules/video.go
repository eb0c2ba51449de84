package modules

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tavu/internal/nav"
	"tavu/internal/pager"
	"tavu/internal/tavus"
)

// Screens owned by the video module.
const (
	ScreenWorkWithVideos nav.Screen = "work_with_videos"
	ScreenGenerateVideo  nav.Screen = "generate_video"
	ScreenListVideos     nav.Screen = "list_videos"
	ScreenRenameVideo    nav.Screen = "rename_video"
	ScreenDeleteVideo    nav.Screen = "delete_video"
)

// VideoModule manages generated videos. Video lists are plain: no sections,
// no filter toggle.
type VideoModule struct {
	videos []tavus.Video
	log    *zap.Logger
}

var _ nav.Module = (*VideoModule)(nil)

func NewVideoModule(log *zap.Logger) *VideoModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &VideoModule{log: log}
}

func (m *VideoModule) Name() string { return "video" }

func (m *VideoModule) Screens() []nav.Screen {
	return []nav.Screen{
		ScreenWorkWithVideos,
		ScreenGenerateVideo,
		ScreenListVideos,
		ScreenRenameVideo,
		ScreenDeleteVideo,
	}
}

func (m *VideoModule) MenuEntries() []nav.MenuEntry {
	return []nav.MenuEntry{{Label: "Work with Videos", Screen: ScreenWorkWithVideos}}
}

func (m *VideoModule) Execute(ctx context.Context, screen nav.Screen, nc *nav.Context) nav.Screen {
	switch screen {
	case ScreenWorkWithVideos:
		return m.workMenu(ctx, nc)
	case ScreenGenerateVideo:
		return m.generate(ctx, nc)
	case ScreenListVideos:
		return m.list(ctx, nc)
	case ScreenRenameVideo:
		return m.rename(ctx, nc)
	case ScreenDeleteVideo:
		return m.delete(ctx, nc)
	}
	return nav.ScreenMain
}

func (m *VideoModule) workMenu(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Work with Videos ===")
	m.refresh(ctx, nc)

	picked, err := nc.UI.Select("What would you like to do with Videos?", []string{
		"Generate a Video",
		"List Videos",
		"Rename a Video",
		"Delete a Video",
		"Back to Main Menu",
	})
	if err != nil {
		return nav.ScreenMain
	}
	switch picked {
	case "Generate a Video":
		return ScreenGenerateVideo
	case "List Videos":
		return ScreenListVideos
	case "Rename a Video":
		return ScreenRenameVideo
	case "Delete a Video":
		return ScreenDeleteVideo
	}
	return nav.ScreenMain
}

func (m *VideoModule) generate(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Generate Video ===")

	name, ok := trimmedInput(nc.UI, "Video Name: ", "Video name cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithVideos
	}

	nc.UI.Say("Select a replica for this video:")
	replicaID, picked := pickReplica(ctx, nc, "Replicas")
	if !picked {
		nc.UI.Say("Replica selection cancelled.")
		nc.UI.Ack("")
		return ScreenWorkWithVideos
	}

	script, ok := trimmedInput(nc.UI, "Script: ", "Script cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithVideos
	}

	scriptPreview := script
	if len(scriptPreview) > 100 {
		scriptPreview = scriptPreview[:100] + "..."
	}
	nc.UI.Say(fmt.Sprintf("Confirm video generation:\n  Name: %s\n  Replica ID: %s\n  Script: %s",
		name, replicaID, scriptPreview))
	if !confirmed(nc.UI, "Proceed with video generation?") {
		nc.UI.Say("Video generation cancelled.")
		nc.UI.Ack("")
		return ScreenWorkWithVideos
	}

	var created tavus.Video
	err := nc.UI.Busy("Generating video...", func() error {
		var err error
		created, err = nc.Client.GenerateVideo(ctx, tavus.GenerateVideoRequest{
			VideoName: name,
			ReplicaID: replicaID,
			Script:    script,
		})
		return err
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error generating video: %v", err))
		nc.UI.Ack("")
		return ScreenWorkWithVideos
	}

	m.log.Info("video generation started", zap.String("video_id", created.VideoID))
	nc.UI.Say(fmt.Sprintf("Video generation started.\nVideo ID: %s\nVideo Name: %s\nStatus: %s",
		created.VideoID, created.VideoName, created.Status))
	nc.UI.Say("Note: Video generation is now in progress. You can check the status later.")
	nc.UI.Ack("")
	return ScreenWorkWithVideos
}

func (m *VideoModule) list(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== List Videos ===")
	return m.browse(nc, nil)
}

func (m *VideoModule) rename(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Rename Video ===")
	return m.browse(nc, func(video tavus.Video) (nav.Screen, bool) {
		return m.handleRename(ctx, nc, video)
	})
}

func (m *VideoModule) delete(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Delete Video ===")
	return m.browse(nc, func(video tavus.Video) (nav.Screen, bool) {
		return m.handleDelete(ctx, nc, video)
	})
}

func (m *VideoModule) browse(nc *nav.Context, onSelect func(tavus.Video) (nav.Screen, bool)) nav.Screen {
	if len(m.videos) == 0 {
		nc.UI.Say("No videos found.")
		nc.UI.Ack("")
		return ScreenWorkWithVideos
	}

	req := pager.Request{Title: "Videos"}
	if onSelect != nil {
		req.OnSelect = func(item pager.Item) pager.Action {
			next, done := onSelect(item.(tavus.Video))
			if !done {
				return pager.Action{Kind: pager.NoAction}
			}
			return pager.Action{Kind: pager.ItemSelected, Item: item, Value: next}
		}
	}

	list := pager.New(pager.ItemsOf(m.videos), nc.PageSize)
	action := list.Browse(nc.UI, req)
	if action.Kind == pager.ItemSelected {
		if next, ok := action.Value.(nav.Screen); ok {
			return next
		}
	}
	return ScreenWorkWithVideos
}

func (m *VideoModule) handleRename(ctx context.Context, nc *nav.Context, video tavus.Video) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Renaming video: %s (%s)", video.VideoName, video.VideoID))
	showDetails(nc.UI, "Video Details", video.DetailFields())

	newName, ok := trimmedInput(nc.UI, "New name: ", "Video name cannot be empty. Please try again.")
	if !ok {
		return "", false
	}

	nc.UI.Say(fmt.Sprintf("Confirm rename operation:\n  From: %s\n  To:   %s", video.VideoName, newName))
	if !confirmed(nc.UI, "Are you sure you want to rename this video?") {
		nc.UI.Say("Rename operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Renaming video...", func() error {
		return nc.Client.RenameVideo(ctx, video.VideoID, newName)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error renaming video: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Video renamed successfully to: %s", newName))
		m.renameCached(video.VideoID, newName)
		m.log.Info("video renamed", zap.String("video_id", video.VideoID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithVideos, true
}

func (m *VideoModule) handleDelete(ctx context.Context, nc *nav.Context, video tavus.Video) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Deleting video: %s (%s)", video.VideoName, video.VideoID))
	showDetails(nc.UI, "Video Details", video.DetailFields())

	nc.UI.Say(fmt.Sprintf("Confirm delete operation:\n  Video Name: %s\n  Video ID: %s\n  Status: %s\nWARNING: This action cannot be undone!",
		video.VideoName, video.VideoID, video.Status))
	if !confirmed(nc.UI, "Are you sure you want to delete this video?") {
		nc.UI.Say("Delete operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Deleting video...", func() error {
		return nc.Client.DeleteVideo(ctx, video.VideoID)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error deleting video: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Video deleted successfully: %s", video.VideoName))
		m.dropCached(video.VideoID)
		m.log.Info("video deleted", zap.String("video_id", video.VideoID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithVideos, true
}

func (m *VideoModule) renameCached(id, newName string) {
	for i := range m.videos {
		if m.videos[i].VideoID == id {
			m.videos[i].VideoName = newName
			return
		}
	}
}

func (m *VideoModule) dropCached(id string) {
	kept := m.videos[:0]
	for _, v := range m.videos {
		if v.VideoID != id {
			kept = append(kept, v)
		}
	}
	m.videos = kept
}

func (m *VideoModule) refresh(ctx context.Context, nc *nav.Context) {
	err := nc.UI.Busy("Loading videos...", func() error {
		fetched, err := nc.Client.ListVideos(ctx)
		if err != nil {
			return err
		}
		m.videos = fetched
		return nil
	})
	if err != nil {
		m.log.Warn("video fetch failed", zap.Error(err))
		nc.UI.Warn(fmt.Sprintf("Error loading videos: %v", err))
	}
}
