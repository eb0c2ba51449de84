// Package menu provides the interactive terminal prompts the navigation UI is
// built from: single-choice menus, free-text input, yes/no confirmation, an
// acknowledgement pause, and a busy spinner wrapped around blocking calls.
//
// The package exposes the UI interface so higher layers never touch the
// terminal directly. Terminal is the Bubble Tea implementation; Script is a
// deterministic in-memory implementation used by tests.
//
// Cancellation (Esc, q, or Ctrl+C inside any prompt) is reported as
// ErrCancelled and is a normal outcome, not a failure.
package menu
