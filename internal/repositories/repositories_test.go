package repositories

import (
	"database/sql"
	"strings"
	"testing"

	"gigcal/internal/models"
	"gigcal/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func newInsertion(name string) *models.Insertion {
	return models.NewInsertion(models.Event{
		Name:      name,
		StartDate: "2025-06-01",
		EndDate:   "2025-06-01",
	}, "cal_evt_1")
}

func TestInsertionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("assigns an ID and persists the record", func(t *testing.T) {
			repo := NewInsertionRepository(newTestDB(t))
			insertion := newInsertion("Arctic Monkeys Live")

			if err := repo.Create(insertion); err != nil {
				t.Fatalf("expected create to succeed, got %v", err)
			}
			if insertion.ID() == "" {
				t.Error("expected an ID to be assigned")
			}

			got, err := repo.Get(insertion.ID())
			if err != nil {
				t.Fatalf("expected get to succeed, got %v", err)
			}
			if got.EventName != "Arctic Monkeys Live" {
				t.Errorf("expected event name to round-trip, got %s", got.EventName)
			}
			if got.CalendarEventID != "cal_evt_1" {
				t.Errorf("expected calendar event id to round-trip, got %s", got.CalendarEventID)
			}
		})

		t.Run("rejects an invalid record", func(t *testing.T) {
			repo := NewInsertionRepository(newTestDB(t))
			insertion := newInsertion("")

			err := repo.Create(insertion)
			if err == nil || !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("expected validation failure, got %v", err)
			}
		})
	})

	t.Run("Get returns an error for a missing ID", func(t *testing.T) {
		repo := NewInsertionRepository(newTestDB(t))

		if _, err := repo.Get("no-such-id"); err == nil {
			t.Error("expected an error for a missing record")
		}
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("modifies an existing record", func(t *testing.T) {
			repo := NewInsertionRepository(newTestDB(t))
			insertion := newInsertion("Arctic Monkeys Live")
			if err := repo.Create(insertion); err != nil {
				t.Fatalf("failed to create record: %v", err)
			}

			insertion.CalendarEventID = "cal_evt_2"
			if err := repo.Update(insertion); err != nil {
				t.Fatalf("expected update to succeed, got %v", err)
			}

			got, err := repo.Get(insertion.ID())
			if err != nil {
				t.Fatalf("failed to reload record: %v", err)
			}
			if got.CalendarEventID != "cal_evt_2" {
				t.Errorf("expected updated calendar event id, got %s", got.CalendarEventID)
			}
		})

		t.Run("fails for a missing record", func(t *testing.T) {
			repo := NewInsertionRepository(newTestDB(t))
			insertion := newInsertion("Arctic Monkeys Live")
			insertion.SetID("no-such-id")

			if err := repo.Update(insertion); err == nil {
				t.Error("expected an error for a missing record")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("removes the record", func(t *testing.T) {
			repo := NewInsertionRepository(newTestDB(t))
			insertion := newInsertion("Arctic Monkeys Live")
			if err := repo.Create(insertion); err != nil {
				t.Fatalf("failed to create record: %v", err)
			}

			if err := repo.Delete(insertion.ID()); err != nil {
				t.Fatalf("expected delete to succeed, got %v", err)
			}
			if _, err := repo.Get(insertion.ID()); err == nil {
				t.Error("expected record to be gone")
			}
		})

		t.Run("fails for a missing record", func(t *testing.T) {
			repo := NewInsertionRepository(newTestDB(t))

			if err := repo.Delete("no-such-id"); err == nil {
				t.Error("expected an error for a missing record")
			}
		})
	})

	t.Run("List", func(t *testing.T) {
		repo := NewInsertionRepository(newTestDB(t))
		for _, name := range []string{"Arctic Monkeys Live", "Arctic Monkeys Live", "Glass Animals"} {
			if err := repo.Create(newInsertion(name)); err != nil {
				t.Fatalf("failed to seed record: %v", err)
			}
		}

		t.Run("returns all records without criteria", func(t *testing.T) {
			insertions, err := repo.List(nil)
			if err != nil {
				t.Fatalf("expected list to succeed, got %v", err)
			}
			if len(insertions) != 3 {
				t.Errorf("expected 3 records, got %d", len(insertions))
			}
		})

		t.Run("filters by event name", func(t *testing.T) {
			insertions, err := repo.List(map[string]any{"event_name": "Glass Animals"})
			if err != nil {
				t.Fatalf("expected list to succeed, got %v", err)
			}
			if len(insertions) != 1 {
				t.Fatalf("expected 1 record, got %d", len(insertions))
			}
			if insertions[0].EventName != "Glass Animals" {
				t.Errorf("expected the filtered record, got %s", insertions[0].EventName)
			}
		})
	})
}
