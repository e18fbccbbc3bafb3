// Package migrations applies the embedded SQL schema to a database using
// goose. Each supported dialect has its own migration directory.
package migrations
