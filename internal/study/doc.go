// Package study drives review sessions.
//
// A Session walks a queue of due cards loaded once at start: each card is
// presented front first, flipped, then graded through the scheduler. Only a
// successful grade touches persisted state. Flipping, abandoning or a failed
// grade leave every review state as it was.
//
// The Registry keeps sessions addressable by ID for the HTTP API, serializes
// calls per session, evicts idle sessions and publishes session events.
package study
