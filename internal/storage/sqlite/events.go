package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/utils"
)

const eventColumns = "id, title, date, time, description, category"

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (models.Event, error) {
	var e models.Event
	var date, category string
	if err := row.Scan(&e.ID, &e.Title, &date, &e.Time, &e.Description, &category); err != nil {
		return models.Event{}, err
	}

	d, err := utils.ParseDate(date)
	if err != nil {
		return models.Event{}, fmt.Errorf("event %s has invalid date %q: %w", e.ID, date, err)
	}
	e.Date = d
	e.Category = models.Category(category)
	return e, nil
}

func (s *Store) AddEvent(e models.Event) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
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

	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
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

	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY seq`)
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
		UPDATE events SET title = ?, date = ?, time = ?, description = ?, category = ?
		WHERE id = ?`,
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

	if _, err := s.db.Exec("DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	return nil
}
