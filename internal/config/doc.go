// Package config handles loading Tavu client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tavu/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. TAVU_* environment variables override file values
//
// # Default Values
//
//   - Config file: ~/.config/tavu/config.toml
//   - API base URL: https://tavusapi.com/v2
//   - Key file: ~/.config/tavu/credentials
//   - Log file: ~/.local/state/tavu/tavu.log
//   - Page size: unset (the prefs file value applies; setting it here or via
//     TAVU_PAGE_SIZE overrides prefs)
//
// # TOML Format
//
// Example config.toml:
//
//	base_url = "https://tavusapi.com/v2"
//	key_file = "~/.config/tavu/credentials"
//	log_path = "~/.local/state/tavu/tavu.log"
//	page_size = 10
//
// All fields are optional. Tilde expansion is performed automatically on
// path fields. The API key itself never lives in the config file; it comes
// from the key file or the TAVU_API_KEY environment variable.
//
// Missing config files are NOT an error - defaults are used instead, so the
// client works out-of-the-box.
package config
