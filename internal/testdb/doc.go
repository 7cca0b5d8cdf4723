//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database: environment detection, a migrated connection, and
// per-test transactions that are always rolled back.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, 0, nil)
//	        // ...
//	    })
//	}
package testdb
