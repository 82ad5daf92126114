// Package storage persists user templates. Three backends share the Store
// interface: a JSON file for single-user installs, a gorm-backed SQL table
// (sqlite or mysql) and a Redis keyspace.
package storage
