// Package file provides TOML-backed configuration for intellidoc.
// Settings live in ~/.intellidoc/config.toml and environment variables
// override file values for secrets.
package file
