package modules

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tavu/internal/nav"
	"tavu/internal/pager"
	"tavu/internal/tavus"
)

// Screens owned by the replica module.
const (
	ScreenWorkWithReplicas nav.Screen = "work_with_replicas"
	ScreenCreateReplica    nav.Screen = "create_replica"
	ScreenListReplicas     nav.Screen = "list_replicas"
	ScreenRenameReplica    nav.Screen = "rename_replica"
	ScreenDeleteReplica    nav.Screen = "delete_replica"
)

// ReplicaModule manages digital replicas. The cache holds the last fetch and
// is kept consistent by mutations instead of refetching.
type ReplicaModule struct {
	replicas []tavus.Replica
	log      *zap.Logger

	// DefaultFilter is the filter the list screen starts with: all, user, or
	// system. Empty means all.
	DefaultFilter string
}

var _ nav.Module = (*ReplicaModule)(nil)

func NewReplicaModule(log *zap.Logger) *ReplicaModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReplicaModule{log: log}
}

func (m *ReplicaModule) Name() string { return "replica" }

func (m *ReplicaModule) Screens() []nav.Screen {
	return []nav.Screen{
		ScreenWorkWithReplicas,
		ScreenCreateReplica,
		ScreenListReplicas,
		ScreenRenameReplica,
		ScreenDeleteReplica,
	}
}

func (m *ReplicaModule) MenuEntries() []nav.MenuEntry {
	return []nav.MenuEntry{{Label: "Work with Replicas", Screen: ScreenWorkWithReplicas}}
}

func (m *ReplicaModule) Execute(ctx context.Context, screen nav.Screen, nc *nav.Context) nav.Screen {
	switch screen {
	case ScreenWorkWithReplicas:
		return m.workMenu(ctx, nc)
	case ScreenCreateReplica:
		return m.create(ctx, nc)
	case ScreenListReplicas:
		return m.list(ctx, nc)
	case ScreenRenameReplica:
		return m.rename(ctx, nc)
	case ScreenDeleteReplica:
		return m.delete(ctx, nc)
	}
	return nav.ScreenMain
}

func (m *ReplicaModule) workMenu(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Work with Replicas ===")
	m.refresh(ctx, nc)

	picked, err := nc.UI.Select("What would you like to do with Replicas?", []string{
		"Create a Replica",
		"List Replicas",
		"Rename a Replica",
		"Delete a Replica",
		"Back to Main Menu",
	})
	if err != nil {
		return nav.ScreenMain
	}
	switch picked {
	case "Create a Replica":
		return ScreenCreateReplica
	case "List Replicas":
		return ScreenListReplicas
	case "Rename a Replica":
		return ScreenRenameReplica
	case "Delete a Replica":
		return ScreenDeleteReplica
	}
	return nav.ScreenMain
}

func (m *ReplicaModule) create(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Create Replica ===")

	name, ok := trimmedInput(nc.UI, "Replica Name: ", "Replica name cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithReplicas
	}
	trainURL, ok := trimmedInput(nc.UI, "Training Video URL: ", "Video URL cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithReplicas
	}
	consentURL, ok := trimmedInput(nc.UI, "Consent Video URL: ", "Video URL cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithReplicas
	}

	nc.UI.Say(fmt.Sprintf("Confirm replica creation:\n  Name: %s\n  Training Video URL: %s\n  Consent Video URL: %s",
		name, trainURL, consentURL))
	if !confirmed(nc.UI, "Proceed with replica creation?") {
		nc.UI.Say("Replica creation cancelled.")
		nc.UI.Ack("")
		return ScreenWorkWithReplicas
	}

	var created tavus.Replica
	err := nc.UI.Busy("Creating replica...", func() error {
		var err error
		created, err = nc.Client.CreateReplica(ctx, tavus.CreateReplicaRequest{
			ReplicaName:     name,
			TrainVideoURL:   trainURL,
			ConsentVideoURL: consentURL,
		})
		return err
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error creating replica: %v", err))
		nc.UI.Ack("")
		return ScreenWorkWithReplicas
	}

	m.log.Info("replica created", zap.String("replica_id", created.ReplicaID))
	nc.UI.Say(fmt.Sprintf("Replica created successfully.\nReplica ID: %s\nStatus: %s", created.ReplicaID, created.Status))
	nc.UI.Say("Note: Replica training is now in progress. You can check the status later.")
	nc.UI.Ack("")
	return ScreenWorkWithReplicas
}

func (m *ReplicaModule) list(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== List Replicas ===")
	filter := m.DefaultFilter
	switch filter {
	case "user", "system":
	default:
		filter = "all"
	}
	return m.browse(nc, filter, true, nil)
}

func (m *ReplicaModule) rename(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Rename Replica ===")
	nc.UI.Say("Only user replicas can be renamed. System replicas cannot be modified.")
	return m.browse(nc, "user", false, func(replica tavus.Replica) (nav.Screen, bool) {
		return m.handleRename(ctx, nc, replica)
	})
}

func (m *ReplicaModule) delete(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Delete Replica ===")
	nc.UI.Say("Only user replicas can be deleted. System replicas cannot be modified.")
	return m.browse(nc, "user", false, func(replica tavus.Replica) (nav.Screen, bool) {
		return m.handleDelete(ctx, nc, replica)
	})
}

// browse runs the sectioned replica list. onSelect maps a picked replica to
// the next screen; ok=false keeps the list open. A nil onSelect shows the
// detail view.
func (m *ReplicaModule) browse(nc *nav.Context, filter string, showToggle bool, onSelect func(tavus.Replica) (nav.Screen, bool)) nav.Screen {
	if len(m.replicas) == 0 {
		nc.UI.Say("No replicas found.")
		nc.UI.Ack("")
		return ScreenWorkWithReplicas
	}

	req := pager.Request{
		Title:            "Replicas",
		Filter:           filter,
		ShowFilterToggle: showToggle,
		OnFilter: func(current string) (pager.Update, bool) {
			next, err := nc.UI.Select("Select filter type:", []string{"user", "system", "all"})
			if err != nil {
				return pager.Update{}, false
			}
			return pager.Update{Sections: replicaSections(m.replicas, next), Filter: next}, true
		},
	}
	if onSelect != nil {
		req.OnSelect = func(item pager.Item) pager.Action {
			next, done := onSelect(item.(tavus.Replica))
			if !done {
				return pager.Action{Kind: pager.NoAction}
			}
			return pager.Action{Kind: pager.ItemSelected, Item: item, Value: next}
		}
	}

	list := pager.NewSectioned(nc.PageSize, replicaSections(m.replicas, filter)...)
	action := list.Browse(nc.UI, req)
	if action.Kind == pager.ItemSelected {
		if next, ok := action.Value.(nav.Screen); ok {
			return next
		}
	}
	return ScreenWorkWithReplicas
}

func (m *ReplicaModule) handleRename(ctx context.Context, nc *nav.Context, replica tavus.Replica) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Renaming replica: %s (%s)", replica.ReplicaName, replica.ReplicaID))
	if !replica.IsUser() {
		nc.UI.Warn(fmt.Sprintf("Error: Cannot rename system replicas. This replica is of type %q.", replica.ReplicaType))
		nc.UI.Ack("")
		return "", false
	}
	showDetails(nc.UI, "Replica Details", replica.DetailFields())

	newName, ok := trimmedInput(nc.UI, "New name: ", "Replica name cannot be empty. Please try again.")
	if !ok {
		return "", false
	}

	nc.UI.Say(fmt.Sprintf("Confirm rename operation:\n  From: %s\n  To:   %s", replica.ReplicaName, newName))
	if !confirmed(nc.UI, "Are you sure you want to rename this replica?") {
		nc.UI.Say("Rename operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Renaming replica...", func() error {
		return nc.Client.RenameReplica(ctx, replica.ReplicaID, newName)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error renaming replica: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Replica renamed successfully to: %s", newName))
		m.renameCached(replica.ReplicaID, newName)
		m.log.Info("replica renamed", zap.String("replica_id", replica.ReplicaID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithReplicas, true
}

func (m *ReplicaModule) handleDelete(ctx context.Context, nc *nav.Context, replica tavus.Replica) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Deleting replica: %s (%s)", replica.ReplicaName, replica.ReplicaID))
	if !replica.IsUser() {
		nc.UI.Warn(fmt.Sprintf("Error: Cannot delete system replicas. This replica is of type %q.", replica.ReplicaType))
		nc.UI.Ack("")
		return "", false
	}
	showDetails(nc.UI, "Replica Details", replica.DetailFields())

	nc.UI.Say(fmt.Sprintf("Confirm delete operation:\n  Replica Name: %s\n  Replica ID: %s\n  Replica Type: %s\nWARNING: This action cannot be undone!",
		replica.ReplicaName, replica.ReplicaID, replica.ReplicaType))
	if !confirmed(nc.UI, "Are you sure you want to delete this replica?") {
		nc.UI.Say("Delete operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Deleting replica...", func() error {
		return nc.Client.DeleteReplica(ctx, replica.ReplicaID)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error deleting replica: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Replica deleted successfully: %s", replica.ReplicaName))
		m.dropCached(replica.ReplicaID)
		m.log.Info("replica deleted", zap.String("replica_id", replica.ReplicaID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithReplicas, true
}

// renameCached updates the cached record in place, preserving order.
func (m *ReplicaModule) renameCached(id, newName string) {
	for i := range m.replicas {
		if m.replicas[i].ReplicaID == id {
			m.replicas[i].ReplicaName = newName
			return
		}
	}
}

// dropCached removes the record by id, preserving the order of the rest.
func (m *ReplicaModule) dropCached(id string) {
	kept := m.replicas[:0]
	for _, r := range m.replicas {
		if r.ReplicaID != id {
			kept = append(kept, r)
		}
	}
	m.replicas = kept
}

func (m *ReplicaModule) refresh(ctx context.Context, nc *nav.Context) {
	err := nc.UI.Busy("Loading replicas...", func() error {
		fetched, err := nc.Client.ListReplicas(ctx)
		if err != nil {
			return err
		}
		m.replicas = fetched
		return nil
	})
	if err != nil {
		m.log.Warn("replica fetch failed", zap.Error(err))
		nc.UI.Warn(fmt.Sprintf("Error loading replicas: %v", err))
	}
}
