// Package nav holds the screen-based navigation engine: a registry mapping
// screens to the modules that own them, and a run loop that hands control
// from screen to screen until exit.
//
// Modules never call each other. The only way across module boundaries is
// returning a screen owned by someone else; the engine resolves it through
// the registry. Unknown screens are logged and recovered to the main menu so
// a bad handoff can never strand the session.
package nav
