// Package app is the composition root: it loads configuration and
// preferences, opens the session log, resolves the API credential, builds
// the Tavus client, registers the resource modules, and runs the navigation
// engine until the operator exits.
package app
