// Package service contains the application use cases that sit between the
// delivery mechanisms (HTTP API and CLI) and the domain core.
//
// VerbService manages the verb collection: listing, adding with validation,
// removal and first-run seeding. Practice flows live in the practice
// subpackage.
//
// Services receive their store through constructor injection and depend on
// the store.VerbStore interface, never on a concrete engine. Store errors are
// translated into the sentinels declared in errors.go; domain validation
// errors pass through unchanged so callers can report them.
package service
