// Package config loads, normalizes, and validates the snipelabel TOML
// configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/snipelabel/config.toml, then ./snipelabel.toml, falling back to
// built-in defaults. The Snipe-IT URL and API key may also come from the
// SNIPEIT_URL and SNIPEIT_API_KEY environment variables. Core packages never
// read configuration ambiently; the loaded Config is passed in explicitly.
package config
