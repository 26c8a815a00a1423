// Package config loads mapforge settings.
//
// Settings are layered, higher layers overriding lower ones:
//
//  1. built-in defaults (Default)
//  2. a TOML file
//  3. MAPFORGE_* environment variables
//
// A configuration file looks like:
//
//	[logging]
//	level = "debug"
//	format = "console"
//
//	[history]
//	max_entries = 500
//
//	[metrics]
//	enabled = true
//	namespace = "mapforge"
//
//	[document]
//	format = "cbor"
//
// Environment variables use the section and key in upper case, for example
// MAPFORGE_HISTORY_MAX_ENTRIES=500. MAPFORGE_LOG_LEVEL, MAPFORGE_LOG_FORMAT
// and MAPFORGE_FORMAT are short aliases.
package config
