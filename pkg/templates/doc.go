// Package templates holds check layout blueprints: the three built-in regional
// templates, user templates registered at runtime or loaded from a directory,
// per-type field defaults, and the JSON/YAML import and export format.
//
// A Catalog is an explicitly constructed service. Callers that need several
// editors with different locales or template sets create several catalogs.
package templates
