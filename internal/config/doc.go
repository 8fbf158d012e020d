// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Unset fields are then filled with defaults resolved once against the
// user's home directory, so the rest of the application receives fully
// resolved paths and never consults the OS environment itself.
//
// The main entry point is [GetStructuredConfig].
package config
