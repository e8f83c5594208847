// package repositories provides the persistence layer for the bridge service.
//
// InsertionRepository implements models.Repository[*models.Insertion] and
// backs the `history` command with an audit trail of completed pipeline runs.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gigcal/internal/models"
	"gigcal/internal/shared"
)

// InsertionRepository handles CRUD operations for calendar insertion records.
type InsertionRepository struct {
	db *sql.DB
}

// NewInsertionRepository creates a new InsertionRepository with the given database connection
func NewInsertionRepository(db *sql.DB) *InsertionRepository {
	return &InsertionRepository{db: db}
}

// Create inserts a new insertion record with a generated ID.
func (r *InsertionRepository) Create(insertion *models.Insertion) error {
	id := shared.GenerateID()
	insertion.SetID(id)

	if err := insertion.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO insertions (id, event_name, start_date, end_date, calendar_event_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		insertion.EventName,
		insertion.StartDate,
		insertion.EndDate,
		insertion.CalendarEventID,
		insertion.CreatedAt(),
		insertion.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// Get retrieves an insertion record by ID.
func (r *InsertionRepository) Get(id string) (*models.Insertion, error) {
	query := `
		SELECT id, event_name, start_date, end_date, calendar_event_id, created_at, updated_at
		FROM insertions
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing insertion record.
func (r *InsertionRepository) Update(insertion *models.Insertion) error {
	if err := insertion.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	query := `
		UPDATE insertions
		SET event_name = ?, start_date = ?, end_date = ?, calendar_event_id = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		insertion.EventName,
		insertion.StartDate,
		insertion.EndDate,
		insertion.CalendarEventID,
		now,
		insertion.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("insertion not found: %s", insertion.ID())
	}

	return nil
}

// Delete removes an insertion record by ID.
func (r *InsertionRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM insertions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("insertion not found: %s", id)
	}

	return nil
}

// List retrieves insertion records matching the given criteria, newest first.
//
// Supported criteria keys: event_name.
func (r *InsertionRepository) List(criteria map[string]any) ([]*models.Insertion, error) {
	query := `
		SELECT id, event_name, start_date, end_date, calendar_event_id, created_at, updated_at
		FROM insertions
	`

	var clauses []string
	var args []any
	if name, ok := criteria["event_name"]; ok {
		clauses = append(clauses, "event_name = ?")
		args = append(args, name)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query insertions: %w", err)
	}
	defer rows.Close()

	var insertions []*models.Insertion
	for rows.Next() {
		insertion, err := scanInsertion(rows)
		if err != nil {
			return nil, err
		}
		insertions = append(insertions, insertion)
	}

	return insertions, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanning.
type scanner interface {
	Scan(dest ...any) error
}

func (r *InsertionRepository) scanOne(row *sql.Row) (*models.Insertion, error) {
	insertion, err := scanInsertion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("insertion not found")
	}
	return insertion, err
}

func scanInsertion(s scanner) (*models.Insertion, error) {
	var insertion models.Insertion
	var id, calendarEventID string
	var created, updated time.Time

	err := s.Scan(&id, &insertion.EventName, &insertion.StartDate, &insertion.EndDate, &calendarEventID, &created, &updated)
	if err != nil {
		return nil, err
	}

	insertion.SetID(id)
	insertion.CalendarEventID = calendarEventID
	insertion.SetTimestamps(created, updated)
	return &insertion, nil
}
