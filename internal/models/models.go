// package models defines the data model for the event-to-calendar bridge service
package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models in the bridge service.
// Implementations include Insertion.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Event represents a live event returned by the discovery service.
//
// StartDate and EndDate are calendar dates in YYYY-MM-DD form, taken verbatim
// from the upstream payload.
type Event struct {
	Name      string
	StartDate string
	EndDate   string
	Venue     string
	City      string
	URL       string
}

// Insertion records a completed calendar insertion for the history view.
// Implements the [Model] interface.
type Insertion struct {
	id              string
	EventName       string
	StartDate       string
	EndDate         string
	CalendarEventID string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewInsertion creates an Insertion for the given event and the calendar entry
// it produced. The ID is assigned by the repository on Create.
func NewInsertion(event Event, calendarEventID string) *Insertion {
	now := time.Now()
	return &Insertion{
		EventName:       event.Name,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		CalendarEventID: calendarEventID,
		createdAt:       now,
		updatedAt:       now,
	}
}

func (i *Insertion) ID() string           { return i.id }
func (i *Insertion) CreatedAt() time.Time { return i.createdAt }
func (i *Insertion) UpdatedAt() time.Time { return i.updatedAt }

// SetID assigns the unique identifier. Called by repositories on Create.
func (i *Insertion) SetID(id string) { i.id = id }

// SetTimestamps overrides created/updated times. Used when scanning rows.
func (i *Insertion) SetTimestamps(created, updated time.Time) {
	i.createdAt = created
	i.updatedAt = updated
}

// Validate checks that the insertion references a named event with both dates.
func (i *Insertion) Validate() error {
	if i.EventName == "" {
		return fmt.Errorf("insertion requires an event name")
	}
	if i.StartDate == "" || i.EndDate == "" {
		return fmt.Errorf("insertion requires start and end dates")
	}
	return nil
}
