package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Event is a single entry in the group agenda.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

func (e Event) validate() error {
	err := requireFields(map[string]string{
		"title":       e.Title,
		"description": e.Description,
		"date":        e.Date,
		"time":        e.Time,
	})
	if err != nil {
		return err
	}
	if err := validDate("date", e.Date); err != nil {
		return err
	}
	if !timeRE.MatchString(e.Time) {
		return InvalidRecord{Reason: "invalid time format, use HH:MM"}
	}
	return nil
}

// ListEvents returns every event ordered by date, earliest first.
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `select event_id, title, description, date, time, location
		from events order by date asc, time asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list events, cause %w", err)
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location); err != nil {
			return nil, fmt.Errorf("unable to scan event, cause %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Event loads one event by id.
func (s *Store) Event(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := s.db.QueryRowContext(ctx, `select event_id, title, description, date, time, location
		from events where event_id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, RecordNotFound{Kind: "event", ID: id}
	} else if err != nil {
		return Event{}, fmt.Errorf("unable to load event %v, cause %w", id, err)
	}
	return e, nil
}

// CreateEvent validates and stores a new event, returning it with the
// assigned id.
func (s *Store) CreateEvent(ctx context.Context, e Event) (Event, error) {
	if err := s.guardWrite(); err != nil {
		return Event{}, err
	}
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	res, err := s.db.ExecContext(ctx, `insert into events (title, description, date, time, location)
		values (?, ?, ?, ?, ?)`, e.Title, e.Description, e.Date, e.Time, e.Location)
	if err != nil {
		return Event{}, fmt.Errorf("unable to store event, cause %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return Event{}, fmt.Errorf("unable to read event id, cause %w", err)
	}
	return e, nil
}

// UpdateEvent replaces the event identified by id.
func (s *Store) UpdateEvent(ctx context.Context, id int64, e Event) (Event, error) {
	if err := s.guardWrite(); err != nil {
		return Event{}, err
	}
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	res, err := s.db.ExecContext(ctx, `update events
		set title = ?, description = ?, date = ?, time = ?, location = ?
		where event_id = ?`, e.Title, e.Description, e.Date, e.Time, e.Location, id)
	if err != nil {
		return Event{}, fmt.Errorf("unable to update event %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Event{}, RecordNotFound{Kind: "event", ID: id}
	}
	e.ID = id
	return e, nil
}

// DeleteEvent removes the event identified by id.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from events where event_id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete event %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "event", ID: id}
	}
	return nil
}
