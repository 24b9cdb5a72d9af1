// Package domain contains the core model for wgflip.
//
// The domain does not depend on the filesystem, YAML parsing or the CLI layer.
// Infra/adapters map into/from these types.
package domain
