// Package jsonstore keeps the verb collection in a single JSON document of
// the form {"verbos": [...]}, the layout used by earlier versions of the
// application. With an empty path the collection lives only in memory.
//
// Loading is lenient: records that fail validation are skipped with a
// warning and the original file is copied to <path>.bak before anything can
// overwrite it.
package jsonstore
