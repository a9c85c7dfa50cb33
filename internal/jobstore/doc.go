// Package jobstore persists job records as one JSON document per job under
// the configured state directory, rather than a shared database.
//
// Every write goes through a temp-file-plus-fsync-plus-rename sequence so a
// crash mid-write never leaves a corrupt record behind; LoadAll silently
// drops files that fail to parse instead of failing the whole load, since a
// half-written record from a previous crash should not block the daemon
// from starting. Job identifiers are fresh UUIDv4 tokens minted once, at
// PROBING entry, and never reused.
package jobstore
