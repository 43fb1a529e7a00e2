// Package config handles configuration loading for the Atlas console.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from ATLAS_CONFIG environment variable
//  2. ~/.config/atlas/config.yaml
//  3. Built-in defaults (local backend, 15s timeout)
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	api:
//	  base_url: "${ATLAS_API_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	api:
//	  request_timeout: "15s"
//	watch:
//	  poll_interval: "10s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Backend endpoint:
//
//	api:
//	  base_url: "https://api.atlas.example.com/api"
//	  request_timeout: "15s"
//
// Session token:
//
//	session:
//	  token_path: "~/.config/atlas/token"  # default when omitted
//
// Watch polling:
//
//	watch:
//	  poll_interval: "10s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
