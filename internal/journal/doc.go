// Package journal persists a record of every CLI operation in SQLite so
// processing history survives across invocations and can be listed with
// `mrs-tools history`.
//
// The database is an audit trail, not application state: entries are only
// ever inserted. Schema changes bump schemaVersion in store.go; a database
// with a different version is rejected with instructions to remove it.
package journal
