//go:build integration

// Package testdb opens a migrated Postgres database for integration tests.
//
// Tests are skipped unless FLASHDECK_TEST_DATABASE_URL is set. Use WithTx for
// tests that can run inside one rolled-back transaction, and Reset for tests
// that need committed data visible across connections.
package testdb
