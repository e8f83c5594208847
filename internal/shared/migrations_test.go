package shared

import (
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='insertions'").Scan(&name)
		if err != nil {
			t.Fatalf("insertions table should exist: %v", err)
		}

		// Re-running applied migrations is a no-op
		if err := RunMigrations(db); err != nil {
			t.Fatalf("re-running migrations should succeed: %v", err)
		}
	})

	t.Run("RollbackMigration", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RollbackMigration(db); err == nil {
			t.Error("rollback without migrations table should fail")
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='insertions'").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema: %v", err)
		}
		if count != 0 {
			t.Error("insertions table should be dropped after rollback")
		}
	})

	t.Run("NewDatabase invalid path", func(t *testing.T) {
		if _, err := NewDatabase("/nonexistent/dir/db.sqlite"); err == nil {
			t.Error("expected error for unwritable path")
		}
	})
}
