// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also owns the schema, embedded as goose
// migrations, and the mapping of PostgreSQL error codes to store errors.
//
// Every store accepts a store.DBTX, so the same implementation serves plain
// connections and transactions (see WithTx).
package postgres
