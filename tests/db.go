package testutil

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/storage/database"
)

var tables = []string{
	"vocab_results", "vocab_assignments", "vocab_items", "vocab_sets",
	"timetables", "attendance", "class_students", "classes", "students", "settings",
}

// PrepareDB returns a migrated, empty test database. Tests using it are skipped unless ENV=TEST.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("ENV") != "TEST" {
		t.Skip("set ENV=TEST to run database tests")
	}

	conf := core.NewConfig()
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	if err := database.Migrate(db.DB); err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}

	truncate := func() {
		for _, table := range tables {
			db.MustExec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE")
		}
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		_ = db.Close()
	})
	return db
}

// Exec runs setup statements, failing the test on the first error.
func Exec(t *testing.T, db *sqlx.DB, queries ...string) {
	t.Helper()
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("exec(%q) failed: %v", q, err)
		}
	}
}
