package sqlite

import "database/sql"

// Schema for the expense collection. Each loosely-typed field of a raw
// record is stored as its JSON fragment so records round-trip bit-for-bit;
// nothing in the store ever needs to query inside them. Insertion order is
// recovered from rowid.
const schema = `
CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    payer TEXT NOT NULL,
    amount TEXT NOT NULL,
    description TEXT NOT NULL,
    participants TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
