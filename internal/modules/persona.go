package modules

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tavu/internal/nav"
	"tavu/internal/pager"
	"tavu/internal/tavus"
)

// Screens owned by the persona module.
const (
	ScreenWorkWithPersonas nav.Screen = "work_with_personas"
	ScreenCreatePersona    nav.Screen = "create_persona"
	ScreenListPersonas     nav.Screen = "list_personas"
	ScreenDeletePersona    nav.Screen = "delete_persona"
)

// PersonaModule manages personas. Personas are fetched per type, so the
// filter toggle refetches instead of slicing the cache.
type PersonaModule struct {
	personas []tavus.Persona
	filter   string
	log      *zap.Logger
}

var _ nav.Module = (*PersonaModule)(nil)

func NewPersonaModule(log *zap.Logger) *PersonaModule {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersonaModule{filter: "user", log: log}
}

func (m *PersonaModule) Name() string { return "persona" }

func (m *PersonaModule) Screens() []nav.Screen {
	return []nav.Screen{
		ScreenWorkWithPersonas,
		ScreenCreatePersona,
		ScreenListPersonas,
		ScreenDeletePersona,
	}
}

func (m *PersonaModule) MenuEntries() []nav.MenuEntry {
	return []nav.MenuEntry{{Label: "Work with Personas", Screen: ScreenWorkWithPersonas}}
}

func (m *PersonaModule) Execute(ctx context.Context, screen nav.Screen, nc *nav.Context) nav.Screen {
	switch screen {
	case ScreenWorkWithPersonas:
		return m.workMenu(ctx, nc)
	case ScreenCreatePersona:
		return m.create(ctx, nc)
	case ScreenListPersonas:
		return m.list(ctx, nc)
	case ScreenDeletePersona:
		return m.delete(ctx, nc)
	}
	return nav.ScreenMain
}

func (m *PersonaModule) workMenu(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Work with Personas ===")
	m.refresh(ctx, nc, "user")

	picked, err := nc.UI.Select("What would you like to do with Personas?", []string{
		"Create a Persona",
		"List Personas",
		"Delete a Persona",
		"Back to Main Menu",
	})
	if err != nil {
		return nav.ScreenMain
	}
	switch picked {
	case "Create a Persona":
		return ScreenCreatePersona
	case "List Personas":
		return ScreenListPersonas
	case "Delete a Persona":
		return ScreenDeletePersona
	}
	return nav.ScreenMain
}

func (m *PersonaModule) create(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Create Persona ===")

	name, ok := trimmedInput(nc.UI, "Persona Name: ", "Persona name cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithPersonas
	}
	prompt, ok := trimmedInput(nc.UI, "System Prompt: ", "System prompt cannot be empty. Please try again.")
	if !ok {
		return ScreenWorkWithPersonas
	}
	// Context and default replica are optional.
	pctx, err := nc.UI.Input("Context: ")
	if err != nil {
		return ScreenWorkWithPersonas
	}

	nc.UI.Say("Select a default replica for this persona (optional):")
	replicaID, picked := pickReplica(ctx, nc, "Replicas")
	if !picked {
		nc.UI.Say("No default replica selected.")
	}

	display := replicaID
	if display == "" {
		display = "None"
	}
	nc.UI.Say(fmt.Sprintf("Confirm persona creation:\n  Name: %s\n  System Prompt: %s\n  Context: %s\n  Default Replica: %s",
		name, prompt, pctx, display))
	if !confirmed(nc.UI, "Proceed with persona creation?") {
		nc.UI.Say("Persona creation cancelled.")
		nc.UI.Ack("")
		return ScreenWorkWithPersonas
	}

	var created tavus.Persona
	err = nc.UI.Busy("Creating persona...", func() error {
		var err error
		created, err = nc.Client.CreatePersona(ctx, tavus.CreatePersonaRequest{
			PersonaName:      name,
			SystemPrompt:     prompt,
			Context:          pctx,
			DefaultReplicaID: replicaID,
		})
		return err
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error creating persona: %v", err))
		nc.UI.Ack("")
		return ScreenWorkWithPersonas
	}

	m.log.Info("persona created", zap.String("persona_id", created.PersonaID))
	nc.UI.Say(fmt.Sprintf("Persona created successfully.\nPersona ID: %s\nPersona Name: %s", created.PersonaID, created.PersonaName))
	nc.UI.Ack("")
	return ScreenWorkWithPersonas
}

func (m *PersonaModule) list(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== List Personas ===")
	m.refresh(ctx, nc, "user")
	return m.browse(ctx, nc, true, nil)
}

func (m *PersonaModule) delete(ctx context.Context, nc *nav.Context) nav.Screen {
	nc.UI.Say("=== Delete Persona ===")
	nc.UI.Say("Only user personas can be deleted. System personas cannot be modified.")
	m.refresh(ctx, nc, "user")
	return m.browse(ctx, nc, false, func(persona tavus.Persona) (nav.Screen, bool) {
		return m.handleDelete(ctx, nc, persona)
	})
}

func (m *PersonaModule) browse(ctx context.Context, nc *nav.Context, showToggle bool, onSelect func(tavus.Persona) (nav.Screen, bool)) nav.Screen {
	if len(m.personas) == 0 {
		nc.UI.Say(fmt.Sprintf("No %s personas found.", m.filter))
		nc.UI.Ack("")
		return ScreenWorkWithPersonas
	}

	req := pager.Request{
		Title:            "Personas",
		Filter:           m.filter,
		ShowFilterToggle: showToggle,
		OnFilter: func(current string) (pager.Update, bool) {
			next, err := nc.UI.Select("Select filter type:", []string{"user", "system"})
			if err != nil {
				return pager.Update{}, false
			}
			m.refresh(ctx, nc, next)
			return pager.Update{Items: pager.ItemsOf(m.personas), Filter: next}, true
		},
	}
	if onSelect != nil {
		req.OnSelect = func(item pager.Item) pager.Action {
			next, done := onSelect(item.(tavus.Persona))
			if !done {
				return pager.Action{Kind: pager.NoAction}
			}
			return pager.Action{Kind: pager.ItemSelected, Item: item, Value: next}
		}
	}

	list := pager.New(pager.ItemsOf(m.personas), nc.PageSize)
	action := list.Browse(nc.UI, req)
	if action.Kind == pager.ItemSelected {
		if next, ok := action.Value.(nav.Screen); ok {
			return next
		}
	}
	return ScreenWorkWithPersonas
}

func (m *PersonaModule) handleDelete(ctx context.Context, nc *nav.Context, persona tavus.Persona) (nav.Screen, bool) {
	nc.UI.Say(fmt.Sprintf("Deleting persona: %s (%s)", persona.PersonaName, persona.PersonaID))
	showDetails(nc.UI, "Persona Details", persona.DetailFields())

	nc.UI.Say(fmt.Sprintf("Confirm delete operation:\n  Persona Name: %s\n  Persona ID: %s\nWARNING: This action cannot be undone!",
		persona.PersonaName, persona.PersonaID))
	if !confirmed(nc.UI, "Are you sure you want to delete this persona?") {
		nc.UI.Say("Delete operation cancelled.")
		nc.UI.Ack("")
		return "", false
	}

	err := nc.UI.Busy("Deleting persona...", func() error {
		return nc.Client.DeletePersona(ctx, persona.PersonaID)
	})
	if err != nil {
		nc.UI.Warn(fmt.Sprintf("Error deleting persona: %v", err))
	} else {
		nc.UI.Say(fmt.Sprintf("Persona deleted successfully: %s", persona.PersonaName))
		m.dropCached(persona.PersonaID)
		m.log.Info("persona deleted", zap.String("persona_id", persona.PersonaID))
	}
	nc.UI.Ack("")
	return ScreenWorkWithPersonas, true
}

func (m *PersonaModule) dropCached(id string) {
	kept := m.personas[:0]
	for _, p := range m.personas {
		if p.PersonaID != id {
			kept = append(kept, p)
		}
	}
	m.personas = kept
}

// refresh fetches personas of the given type and records the active filter.
func (m *PersonaModule) refresh(ctx context.Context, nc *nav.Context, personaType string) {
	err := nc.UI.Busy(fmt.Sprintf("Loading %s personas...", personaType), func() error {
		fetched, err := nc.Client.ListPersonas(ctx, personaType)
		if err != nil {
			return err
		}
		m.personas = fetched
		m.filter = personaType
		return nil
	})
	if err != nil {
		m.log.Warn("persona fetch failed", zap.Error(err))
		nc.UI.Warn(fmt.Sprintf("Error loading personas: %v", err))
	}
}
