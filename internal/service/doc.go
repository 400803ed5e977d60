// Package service holds the application services behind the HTTP boundary:
// create, read, update, delete and list for decks, templates, media and
// cards, plus card rendering for study sessions.
//
// Services validate input with the domain types, orchestrate stores inside
// transactions where several rows must change together, and wrap failures in
// *ServiceError while keeping the store and domain sentinels reachable
// through errors.Is.
package service
