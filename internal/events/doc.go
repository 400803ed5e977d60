// Package events decouples producers of notable occurrences (a review was
// graded, a study session changed) from whatever consumes them.
//
// Producers emit *Event values through an EventEmitter; handlers registered
// on the InMemoryEventEmitter receive them synchronously. LoggingHandler is
// the default consumer and turns review logs into an audit trail.
package events
