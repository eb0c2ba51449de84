package modules

import (
	"context"
	"fmt"

	"tavu/internal/nav"
	"tavu/internal/pager"
	"tavu/internal/tavus"
)

// replicaSections partitions replicas for the sectioned list. The "all"
// filter yields the User/System pair; a single-type filter yields one section
// so no headers are rendered.
func replicaSections(replicas []tavus.Replica, filter string) []pager.NamedItems {
	var user, system []pager.Item
	for _, r := range replicas {
		if r.IsUser() {
			user = append(user, r)
		} else {
			system = append(system, r)
		}
	}
	switch filter {
	case "user":
		return []pager.NamedItems{{Name: "User Replicas", Items: user}}
	case "system":
		return []pager.NamedItems{{Name: "System Replicas", Items: system}}
	default:
		return []pager.NamedItems{
			{Name: "User Replicas", Items: user},
			{Name: "System Replicas", Items: system},
		}
	}
}

// pickReplica fetches the account's replicas and runs the shared sectioned
// picker. It returns the chosen replica id, or ok=false when the operator
// backed out or no replicas exist.
func pickReplica(ctx context.Context, nc *nav.Context, title string) (string, bool) {
	var replicas []tavus.Replica
	err := nc.UI.Busy("Loading replicas...", func() error {
		var err error
		replicas, err = nc.Client.ListReplicas(ctx)
		return err
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error loading replicas: %v", err))
		nc.UI.Ack("")
		return "", false
	}
	if len(replicas) == 0 {
		nc.UI.Say("No replicas found.")
		nc.UI.Ack("")
		return "", false
	}

	filter := "all"
	list := pager.NewSectioned(nc.PageSize, replicaSections(replicas, filter)...)
	action := list.Browse(nc.UI, pager.Request{
		Title:            title,
		Filter:           filter,
		ShowFilterToggle: true,
		OnSelect: func(item pager.Item) pager.Action {
			replica := item.(tavus.Replica)
			return pager.Action{Kind: pager.ItemSelected, Item: item, Value: replica.ReplicaID}
		},
		OnFilter: func(current string) (pager.Update, bool) {
			next, err := nc.UI.Select("Select filter type:", []string{"user", "system", "all"})
			if err != nil {
				return pager.Update{}, false
			}
			return pager.Update{Sections: replicaSections(replicas, next), Filter: next}, true
		},
	})
	if action.Kind != pager.ItemSelected {
		return "", false
	}
	id, _ := action.Value.(string)
	return id, id != ""
}

// pickPersona fetches user personas and lets the operator choose one.
func pickPersona(ctx context.Context, nc *nav.Context) (string, bool) {
	var personas []tavus.Persona
	err := nc.UI.Busy("Loading personas...", func() error {
		var err error
		personas, err = nc.Client.ListPersonas(ctx, "user")
		return err
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error loading personas: %v", err))
		nc.UI.Ack("")
		return "", false
	}
	if len(personas) == 0 {
		nc.UI.Say("No user personas found.")
		nc.UI.Ack("")
		return "", false
	}

	list := pager.New(pager.ItemsOf(personas), nc.PageSize)
	action := list.Browse(nc.UI, pager.Request{
		Title: "Personas",
		OnSelect: func(item pager.Item) pager.Action {
			persona := item.(tavus.Persona)
			return pager.Action{Kind: pager.ItemSelected, Item: item, Value: persona.PersonaID}
		},
	})
	if action.Kind != pager.ItemSelected {
		return "", false
	}
	id, _ := action.Value.(string)
	return id, id != ""
}
