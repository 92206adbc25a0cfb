// Package definitions loads parameter catalogs and their initial models from
// JSON, YAML or TOML documents, validates them, and derives catalogs from
// OpenAPI component schemas.
package definitions
