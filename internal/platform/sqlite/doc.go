// Package sqlite provides the SQLite implementation of the verb collection
// store, backed by github.com/mattn/go-sqlite3. It is the default engine for
// a single learner running the server or CLI locally.
package sqlite
