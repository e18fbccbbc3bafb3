// Package store defines interfaces for verb collection persistence.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the conjugation and mastery rules
// to remain independent of specific database technologies.
package store
