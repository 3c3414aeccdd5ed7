// Package config loads fitlog's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/fitlog/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	base_url = "https://diet.example.com"
//	timeout_seconds = 10
//	log_dir = "~/.local/share/fitlog/logs"
//	token_store = "file"          # file, keyring or memory
//	credentials_path = "~/.config/fitlog/credentials.toml"
//	keyring_user = "alice"
//	mets_db = "~/.local/share/fitlog/mets.db"
//	weight_kg = 68
//
//	[targets]
//	calories = 2000
//	protein = 60
//	carbs = 250
//	fat = 65
//
// Every field is optional. Tilde expansion is applied to the path fields.
// Negative numbers and unknown token_store values are rejected.
//
// Missing config files are NOT an error, so fitlog works out of the box
// against a backend on localhost.
package config
