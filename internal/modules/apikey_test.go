package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavu/internal/menu"
	"tavu/internal/nav"
	"tavu/internal/tavus"
)

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskKey(""))
	assert.Equal(t, "***", maskKey("abc"))
	assert.Equal(t, "******1234", maskKey("abcdef1234"))
}

func TestSetAPIKeyPersisted(t *testing.T) {
	var gotKey string
	var gotPersist bool
	nc := &nav.Context{
		UI:     (&menu.Script{}).Answer(true).Type("tvs-newkey-9876").Answer(true),
		APIKey: "tvs-oldkey-1234",
		SetCredential: func(key string, persist bool) error {
			gotKey, gotPersist = key, persist
			return nil
		},
	}

	next := NewAPIKeyModule(nil).Execute(context.Background(), ScreenSetAPIKey, nc)
	assert.Equal(t, nav.ScreenMain, next)
	assert.Equal(t, "tvs-newkey-9876", gotKey)
	assert.True(t, gotPersist)

	ui := nc.UI.(*menu.Script)
	assert.Contains(t, ui.Said, "Currently set API key: ***********1234")
}

func TestSetAPIKeyDeclined(t *testing.T) {
	called := false
	nc := &nav.Context{
		UI:     (&menu.Script{}).Answer(false),
		APIKey: "tvs-oldkey-1234",
		SetCredential: func(string, bool) error {
			called = true
			return nil
		},
	}

	next := NewAPIKeyModule(nil).Execute(context.Background(), ScreenSetAPIKey, nc)
	assert.Equal(t, nav.ScreenMain, next)
	assert.False(t, called)
}

func TestPickReplicaReturnsID(t *testing.T) {
	replicas := []tavus.Replica{
		{ReplicaID: "r1", ReplicaName: "Mine", ReplicaType: "user", Status: "completed"},
		{ReplicaID: "s1", ReplicaName: "Stock", ReplicaType: "system", Status: "completed"},
	}
	nc := testContext(&fakeAPI{replicas: replicas}, (&menu.Script{}).Choose(row(2, replicas[1])))

	id, ok := pickReplica(context.Background(), nc, "Replicas")
	require.True(t, ok)
	assert.Equal(t, "s1", id)
}

func TestPickReplicaEmpty(t *testing.T) {
	nc := testContext(&fakeAPI{}, &menu.Script{})

	_, ok := pickReplica(context.Background(), nc, "Replicas")
	assert.False(t, ok)
}
