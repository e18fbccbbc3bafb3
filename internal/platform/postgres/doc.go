// Package postgres provides the PostgreSQL implementation of the verb
// collection store defined in the internal/store package. It handles query
// execution and the mapping between domain verbs and database records.
package postgres
