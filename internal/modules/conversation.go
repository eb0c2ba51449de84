package modules

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tavu/internal/nav"
	"tavu/internal/pager"
	"tavu/internal/tavus"
)

// Screens owned by the conversation module.
const (
	ScreenWorkWithConversations nav.Screen = "work_with_conversations"
	ScreenCreateConversation    nav.Screen = "create_conversation"
	ScreenListConversations     nav.Screen = "list_conversations"
	ScreenEndConversation       nav.Screen = "end_conversation"
	ScreenDeleteConversation    nav.Screen = "delete_conversation"
)

// ConversationModule manages real-time conversations with replicas.
type ConversationModule struct {
	conversations []tavus.Conversation
	log           *zap.Logger
}

var _ nav.Module = (*ConversationModule)(nil)

func NewConversationModule(log *zap.Logger) *ConversationModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConversationModule{log: log}
}

func (m *ConversationModule) Name() string { return "conversation" }

func (m *ConversationModule) Screens() []nav.Screen {
	return []nav.Screen{
		ScreenWorkWithConversations,
		ScreenCreateConversation,
		ScreenListConversations,
		ScreenEndConversation,
		ScreenDeleteConversation,
	}
}

func (m *ConversationModule) MenuEntries() []nav.MenuEntry {
	return []nav.MenuEntry{{Label: "Work with Conversations", Screen: ScreenWorkWithConversations}}
}

func (m *ConversationModule) Execute(ctx context.Context, screen nav.Screen, nc *nav.Context) nav.Screen {
	switch screen {
	case ScreenWorkWithConversations:
		return m.workMenu(ctx, nc)
	case ScreenCreateConversation:
		return m.create(ctx, nc)
	case ScreenListConversations:
		return m.list(ctx, nc)
	case ScreenEndConversation:
		return m.end(ctx, nc)
	case ScreenDeleteConversation:
		return m.delete(ctx, nc)
	}
	return nav.ScreenMain
}

func (m *ConversationModule) workMenu(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Work with Conversations ===")
	m.refresh(ctx, nc)

	picked, err := nc.UI.Select("What would you like to do with Conversations?", []string{
		"Create a Conversation",
		"List Conversations",
		"End a Conversation",
		"Delete a Conversation",
		"Back to Main Menu",
	})
	if err != nil {
		return nav.ScreenMain
	}
	switch picked {
	case "Create a Conversation":
		return ScreenCreateConversation
	case "List Conversations":
		return ScreenListConversations
	case "End a Conversation":
		return ScreenEndConversation
	case "Delete a Conversation":
		return ScreenDeleteConversation
	}
	return nav.ScreenMain
}

// create collects a name plus at least one of replica and persona. The API
// rejects a conversation bound to neither.
func (m *ConversationModule) create(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Create Conversation ===")

	name, ok := trimmedInput(nc.UI, "Conversation Name: ", "Conversation name cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithConversations
	}

	var replicaID string
	if confirmed(nc.UI, "Select a replica for this conversation?") {
		if id, picked := pickReplica(ctx, nc, "Replicas"); picked {
			replicaID = id
		}
	}

	var personaID string
	if confirmed(nc.UI, "Select a persona for this conversation?") {
		if id, picked := pickPersona(ctx, nc); picked {
			personaID = id
		}
	}

	if replicaID == "" && personaID == "" {
		nc.UI.Say("A conversation needs a replica or a persona. Please try again.")
		nc.UI.Ack("")
		return ScreenWorkWithConversations
	}

	display := func(id string) string {
		if id == "" {
			return "None"
		}
		return id
	}
	nc.UI.Say(fmt.Sprintf("Confirm conversation creation:\n  Name: %s\n  Replica: %s\n  Persona: %s",
		name, display(replicaID), display(personaID)))
	if !confirmed(nc.UI, "Proceed with conversation creation?") {
		nc.UI.Say("Conversation creation cancelled.")
		nc.UI.Ack("")
		return ScreenWorkWithConversations
	}

	var created tavus.Conversation
	err := nc.UI.Busy("Creating conversation...", func() error {
		var err error
		created, err = nc.Client.CreateConversation(ctx, tavus.CreateConversationRequest{
			ConversationName: name,
			ReplicaID:        replicaID,
			PersonaID:        personaID,
		})
		return err
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error creating conversation: %v", err))
		nc.UI.Ack("")
		return ScreenWorkWithConversations
	}

	m.log.Info("conversation created", zap.String("conversation_id", created.ConversationID))
	nc.UI.Say(fmt.Sprintf("Conversation created successfully.\nConversation ID: %s\nJoin URL: %s",
		created.ConversationID, created.ConversationURL))
	nc.UI.Ack("")
	return ScreenWorkWithConversations
}

func (m *ConversationModule) list(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== List Conversations ===")
	return m.browse(nc, m.conversations, nil)
}

// end lists only active conversations; ended ones cannot be ended again.
func (m *ConversationModule) end(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== End Conversation ===")

	var active []tavus.Conversation
	for _, c := range m.conversations {
		if c.IsActive() {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		nc.UI.Say("No active conversations found.")
		nc.UI.Ack("")
		return ScreenWorkWithConversations
	}
	return m.browse(nc, active, func(conversation tavus.Conversation) (nav.Screen, bool) {
		return m.handleEnd(ctx, nc, conversation)
	})
}

func (m *ConversationModule) delete(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Delete Conversation ===")
	return m.browse(nc, m.conversations, func(conversation tavus.Conversation) (nav.Screen, bool) {
		return m.handleDelete(ctx, nc, conversation)
	})
}

func (m *ConversationModule) browse(nc *nav.Context, conversations []tavus.Conversation, onSelect func(tavus.Conversation) (nav.Screen, bool)) nav.Screen {
	if len(conversations) == 0 {
		nc.UI.Say("No conversations found.")
		nc.UI.Ack("")
		return ScreenWorkWithConversations
	}

	req := pager.Request{Title: "Conversations"}
	if onSelect != nil {
		req.OnSelect = func(item pager.Item) pager.Action {
			next, done := onSelect(item.(tavus.Conversation))
			if !done {
				return pager.Action{Kind: pager.NoAction}
			}
			return pager.Action{Kind: pager.ItemSelected, Item: item, Value: next}
		}
	}

	list := pager.New(pager.ItemsOf(conversations), nc.PageSize)
	action := list.Browse(nc.UI, req)
	if action.Kind == pager.ItemSelected {
		if next, ok := action.Value.(nav.Screen); ok {
			return next
		}
	}
	return ScreenWorkWithConversations
}

func (m *ConversationModule) handleEnd(ctx context.Context, nc *nav.Context, conversation tavus.Conversation) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Ending conversation: %s (%s)", conversation.ConversationName, conversation.ConversationID))
	showDetails(nc.UI, "Conversation Details", conversation.DetailFields())

	if !confirmed(nc.UI, "Are you sure you want to end this conversation?") {
		nc.UI.Say("End operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Ending conversation...", func() error {
		return nc.Client.EndConversation(ctx, conversation.ConversationID)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error ending conversation: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Conversation ended: %s", conversation.ConversationName))
		m.markEnded(conversation.ConversationID)
		m.log.Info("conversation ended", zap.String("conversation_id", conversation.ConversationID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithConversations, true
}

func (m *ConversationModule) handleDelete(ctx context.Context, nc *nav.Context, conversation tavus.Conversation) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Deleting conversation: %s (%s)", conversation.ConversationName, conversation.ConversationID))
	showDetails(nc.UI, "Conversation Details", conversation.DetailFields())

	nc.UI.Say(fmt.Sprintf("Confirm delete operation:\n  Conversation Name: %s\n  Conversation ID: %s\nWARNING: This action cannot be undone!",
		conversation.ConversationName, conversation.ConversationID))
	if !confirmed(nc.UI, "Are you sure you want to delete this conversation?") {
		nc.UI.Say("Delete operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Deleting conversation...", func() error {
		return nc.Client.DeleteConversation(ctx, conversation.ConversationID)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error deleting conversation: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Conversation deleted successfully: %s", conversation.ConversationName))
		m.dropCached(conversation.ConversationID)
		m.log.Info("conversation deleted", zap.String("conversation_id", conversation.ConversationID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithConversations, true
}

func (m *ConversationModule) markEnded(id string) {
	for i := range m.conversations {
		if m.conversations[i].ConversationID == id {
			m.conversations[i].Status = "ended"
			return
		}
	}
}

func (m *ConversationModule) dropCached(id string) {
	kept := m.conversations[:0]
	for _, c := range m.conversations {
		if c.ConversationID != id {
			kept = append(kept, c)
		}
	}
	m.conversations = kept
}

func (m *ConversationModule) refresh(ctx context.Context, nc *nav.Context) {
	err := nc.UI.Busy("Loading conversations...", func() error {
		fetched, err := nc.Client.ListConversations(ctx)
		if err != nil {
			return err
		}
		m.conversations = fetched
		return nil
	})
	if err != nil {
		m.log.Warn("conversation fetch failed", zap.Error(err))
		nc.UI.Warn(fmt.Sprintf("Error loading conversations: %v", err))
	}
}
