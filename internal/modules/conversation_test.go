package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavu/internal/menu"
	"tavu/internal/tavus"
)

func TestConversationEndListsOnlyActive(t *testing.T) {
	conversations := []tavus.Conversation{
		{ConversationID: "c1", ConversationName: "Old", Status: "ended"},
		{ConversationID: "c2", ConversationName: "Live", Status: "active"},
	}
	api := &fakeAPI{}
	m := NewConversationModule(nil)
	m.conversations = append([]tavus.Conversation(nil), conversations...)

	ui := (&menu.Script{}).
		Choose(row(1, conversations[1])).
		Answer(true)

	next := m.Execute(context.Background(), ScreenEndConversation, testContext(api, ui))
	assert.Equal(t, ScreenWorkWithConversations, next)

	assert.Equal(t, []string{"c2"}, api.endedConvs)
	assert.Equal(t, "ended", m.conversations[1].Status)
	assert.Contains(t, ui.Said, "Page 1 of 1 (1 conversations)")
}

func TestConversationEndNoActive(t *testing.T) {
	m := NewConversationModule(nil)
	m.conversations = []tavus.Conversation{{ConversationID: "c1", Status: "ended"}}
	ui := &menu.Script{}

	next := m.Execute(context.Background(), ScreenEndConversation, testContext(&fakeAPI{}, ui))
	assert.Equal(t, ScreenWorkWithConversations, next)
	assert.Contains(t, ui.Said, "No active conversations found.")
}

func TestConversationDeleteDropsCacheEntry(t *testing.T) {
	conversations := []tavus.Conversation{
		{ConversationID: "c1", ConversationName: "First", Status: "ended"},
		{ConversationID: "c2", ConversationName: "Second", Status: "active"},
	}
	api := &fakeAPI{}
	m := NewConversationModule(nil)
	m.conversations = append([]tavus.Conversation(nil), conversations...)

	ui := (&menu.Script{}).
		Choose(row(1, conversations[0])).
		Answer(true)

	next := m.Execute(context.Background(), ScreenDeleteConversation, testContext(api, ui))
	assert.Equal(t, ScreenWorkWithConversations, next)

	assert.Equal(t, []string{"c1"}, api.deletedConvs)
	require.Len(t, m.conversations, 1)
	assert.Equal(t, "c2", m.conversations[0].ConversationID)
}

func TestConversationCreateWithPersona(t *testing.T) {
	persona := tavus.Persona{PersonaID: "p1", PersonaName: "Coach"}
	api := &fakeAPI{personas: map[string][]tavus.Persona{"user": {persona}}}
	m := NewConversationModule(nil)

	ui := (&menu.Script{}).
		Type("Demo Call").
		Answer(false). // no replica
		Answer(true).  // pick a persona
		Choose(row(1, persona)).
		Answer(true) // proceed

	next := m.Execute(context.Background(), ScreenCreateConversation, testContext(api, ui))
	assert.Equal(t, ScreenWorkWithConversations, next)

	assert.Equal(t, "Demo Call", api.createConversationReq.ConversationName)
	assert.Equal(t, "p1", api.createConversationReq.PersonaID)
	assert.Empty(t, api.createConversationReq.ReplicaID)
}

func TestConversationCreateRequiresReplicaOrPersona(t *testing.T) {
	api := &fakeAPI{}
	m := NewConversationModule(nil)

	ui := (&menu.Script{}).
		Type("Demo Call").
		Answer(false).
		Answer(false)

	next := m.Execute(context.Background(), ScreenCreateConversation, testContext(api, ui))
	assert.Equal(t, ScreenWorkWithConversations, next)
	assert.Contains(t, ui.Said, "A conversation needs a replica or a persona. Please try again.")
	assert.Empty(t, api.createConversationReq.ConversationName)
}
