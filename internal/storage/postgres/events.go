package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
)

func scanEvent(row interface{ Scan(...any) error }) (models.Event, error) {
	var e models.Event
	var date time.Time
	var category string
	if err := row.Scan(&e.ID, &e.Title, &date, &e.Time, &e.Description, &category); err != nil {
		return models.Event{}, err
	}

	// DATE columns arrive as UTC midnight; keep the calendar day in local time.
	e.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	e.Category = models.Category(category)
	return e, nil
}

func (s *Store) AddEvent(e models.Event) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO events (id, title, date, time, description, category)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Title, e.Date.Format(constants.DateFormat), e.Time, e.Description, string(e.Category))
	if err != nil {
		return fmt.Errorf("inserting event %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) GetEvent(id string) (models.Event, error) {
	if s.db == nil {
		return models.Event{}, storage.ErrNotLoaded
	}

	row := s.db.QueryRow(`
		SELECT id, title, date, time, description, category
		FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
		}
		return models.Event{}, err
	}
	return e, nil
}

func (s *Store) GetAllEvents() ([]models.Event, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT id, title, date, time, description, category
		FROM events ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) UpdateEvent(e models.Event) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	res, err := s.db.Exec(`
		UPDATE events SET title = $1, date = $2, time = $3, description = $4, category = $5
		WHERE id = $6`,
		e.Title, e.Date.Format(constants.DateFormat), e.Time, e.Description, string(e.Category), e.ID)
	if err != nil {
		return fmt.Errorf("updating event %s: %w", e.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", e.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteEvent(id string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	if _, err := s.db.Exec("DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	return nil
}
