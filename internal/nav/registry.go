package nav

import (
	"errors"
	"fmt"
)

// ErrScreenConflict reports a screen claimed by more than one module, or a
// module claiming a reserved screen. Registration fails fast at startup; a
// silent overwrite would reroute screens depending on registration order.
var ErrScreenConflict = errors.New("nav: screen already registered")

// Registry owns the screen-to-module mapping and the main-menu entry order.
type Registry struct {
	modules []Module
	owners  map[Screen]Module
}

func NewRegistry() *Registry {
	return &Registry{owners: make(map[Screen]Module)}
}

// Register adds a module and claims all of its screens. On conflict nothing
// is registered, not even the module's unconflicted screens.
func (r *Registry) Register(m Module) error {
	for _, screen := range m.Screens() {
		if screen == ScreenMain || screen == ScreenExit {
			return fmt.Errorf("%w: %q is reserved (module %s)", ErrScreenConflict, screen, m.Name())
		}
		if owner, taken := r.owners[screen]; taken {
			return fmt.Errorf("%w: %q claimed by both %s and %s", ErrScreenConflict, screen, owner.Name(), m.Name())
		}
	}
	for _, screen := range m.Screens() {
		r.owners[screen] = m
	}
	r.modules = append(r.modules, m)
	return nil
}

// Resolve returns the module owning screen.
func (r *Registry) Resolve(screen Screen) (Module, bool) {
	m, ok := r.owners[screen]
	return m, ok
}

// MenuEntries flattens every module's entries in registration order.
func (r *Registry) MenuEntries() []MenuEntry {
	var entries []MenuEntry
	for _, m := range r.modules {
		entries = append(entries, m.MenuEntries()...)
	}
	return entries
}
