// Package api exposes decks, templates, media, cards and study sessions over
// HTTP. Handlers decode and validate requests, call the services and map
// service errors to status codes and client-safe messages.
//
// All routes are mounted under /api by cmd/server. Destructive requests
// require ?confirm=true. List endpoints page with qn (page number) and qs
// (page size).
package api
