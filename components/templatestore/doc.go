// Package templatestore provides a small net/http component that lists,
// serves, saves and deletes check templates.
//
// Built-in layouts come from a templates.Catalog and are read-only. User
// templates are persisted in a storage.Store. Every response body is JSON of
// the form {"data": ...} or {"error": "..."}, except the SVG thumbnail route.
package templatestore
