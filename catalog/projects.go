package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Project status values accepted by the catalog.
const (
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
	ProjectPlanned   = "planned"
	ProjectPaused    = "paused"
)

// Project is a research project, past or present.
type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Image       string `json:"image"`
}

func (p Project) validate() error {
	err := requireFields(map[string]string{
		"title":       p.Title,
		"description": p.Description,
		"status":      p.Status,
		"startDate":   p.StartDate,
	})
	if err != nil {
		return err
	}
	switch p.Status {
	case ProjectOngoing, ProjectCompleted, ProjectPlanned, ProjectPaused:
	default:
		return InvalidRecord{Reason: "invalid status, use: ongoing, completed, planned, paused"}
	}
	if err := validDate("startDate", p.StartDate); err != nil {
		return err
	}
	if p.EndDate != "" {
		if err := validDate("endDate", p.EndDate); err != nil {
			return err
		}
		// ISO dates compare correctly as strings
		if p.EndDate < p.StartDate {
			return InvalidRecord{Reason: "endDate must not be before startDate"}
		}
	}
	return maxLen("title", p.Title, 200)
}

// ListProjects returns every project, most recently started first.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `select project_id, title, description, status, start_date, end_date, image
		from projects order by start_date desc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list projects, cause %w", err)
	}
	defer rows.Close()
	out := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.Image); err != nil {
			return nil, fmt.Errorf("unable to scan project, cause %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Project loads one project by id.
func (s *Store) Project(ctx context.Context, id int64) (Project, error) {
	var p Project
	err := s.db.QueryRowContext(ctx, `select project_id, title, description, status, start_date, end_date, image
		from projects where project_id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, RecordNotFound{Kind: "project", ID: id}
	} else if err != nil {
		return Project{}, fmt.Errorf("unable to load project %v, cause %w", id, err)
	}
	return p, nil
}

// CreateProject validates and stores a new project.
func (s *Store) CreateProject(ctx context.Context, p Project) (Project, error) {
	if err := s.guardWrite(); err != nil {
		return Project{}, err
	}
	if err := p.validate(); err != nil {
		return Project{}, err
	}
	res, err := s.db.ExecContext(ctx, `insert into projects (title, description, status, start_date, end_date, image)
		values (?, ?, ?, ?, ?, ?)`, p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.Image)
	if err != nil {
		return Project{}, fmt.Errorf("unable to store project, cause %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return Project{}, fmt.Errorf("unable to read project id, cause %w", err)
	}
	return p, nil
}

// UpdateProject replaces the project identified by id.
func (s *Store) UpdateProject(ctx context.Context, id int64, p Project) (Project, error) {
	if err := s.guardWrite(); err != nil {
		return Project{}, err
	}
	if err := p.validate(); err != nil {
		return Project{}, err
	}
	res, err := s.db.ExecContext(ctx, `update projects
		set title = ?, description = ?, status = ?, start_date = ?, end_date = ?, image = ?
		where project_id = ?`, p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.Image, id)
	if err != nil {
		return Project{}, fmt.Errorf("unable to update project %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Project{}, RecordNotFound{Kind: "project", ID: id}
	}
	p.ID = id
	return p, nil
}

// DeleteProject removes the project identified by id.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from projects where project_id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete project %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "project", ID: id}
	}
	return nil
}
