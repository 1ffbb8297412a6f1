package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ResearchArea is one of the themes the group works on. Titles are unique
// so the public site never shows the same area twice.
type ResearchArea struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r ResearchArea) validate() error {
	err := requireFields(map[string]string{
		"title":       r.Title,
		"description": r.Description,
	})
	if err != nil {
		return err
	}
	if err := maxLen("title", r.Title, 200); err != nil {
		return err
	}
	return maxLen("description", r.Description, 2000)
}

// ListResearchAreas returns every research area, ordered by title.
func (s *Store) ListResearchAreas(ctx context.Context) ([]ResearchArea, error) {
	rows, err := s.db.QueryContext(ctx, `select research_id, title, description
		from research order by title asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list research areas, cause %w", err)
	}
	defer rows.Close()
	out := []ResearchArea{}
	for rows.Next() {
		var r ResearchArea
		if err := rows.Scan(&r.ID, &r.Title, &r.Description); err != nil {
			return nil, fmt.Errorf("unable to scan research area, cause %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ResearchArea loads one research area by id.
func (s *Store) ResearchArea(ctx context.Context, id int64) (ResearchArea, error) {
	var r ResearchArea
	err := s.db.QueryRowContext(ctx, `select research_id, title, description
		from research where research_id = ?`, id).
		Scan(&r.ID, &r.Title, &r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return ResearchArea{}, RecordNotFound{Kind: "research area", ID: id}
	} else if err != nil {
		return ResearchArea{}, fmt.Errorf("unable to load research area %v, cause %w", id, err)
	}
	return r, nil
}

func (s *Store) researchTitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `select research_id from research
		where title = ? and research_id <> ?`, title, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("unable to check research area title, cause %w", err)
	}
	return true, nil
}

// CreateResearchArea validates and stores a new research area, rejecting
// duplicate titles.
func (s *Store) CreateResearchArea(ctx context.Context, r ResearchArea) (ResearchArea, error) {
	if err := s.guardWrite(); err != nil {
		return ResearchArea{}, err
	}
	if err := r.validate(); err != nil {
		return ResearchArea{}, err
	}
	taken, err := s.researchTitleTaken(ctx, r.Title, 0)
	if err != nil {
		return ResearchArea{}, err
	}
	if taken {
		return ResearchArea{}, DuplicateRecord{Kind: "research area", Field: "title"}
	}
	res, err := s.db.ExecContext(ctx, `insert into research (title, description) values (?, ?)`,
		r.Title, r.Description)
	if err != nil {
		return ResearchArea{}, fmt.Errorf("unable to store research area, cause %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return ResearchArea{}, fmt.Errorf("unable to read research area id, cause %w", err)
	}
	return r, nil
}

// UpdateResearchArea replaces the research area identified by id.
func (s *Store) UpdateResearchArea(ctx context.Context, id int64, r ResearchArea) (ResearchArea, error) {
	if err := s.guardWrite(); err != nil {
		return ResearchArea{}, err
	}
	if err := r.validate(); err != nil {
		return ResearchArea{}, err
	}
	taken, err := s.researchTitleTaken(ctx, r.Title, id)
	if err != nil {
		return ResearchArea{}, err
	}
	if taken {
		return ResearchArea{}, DuplicateRecord{Kind: "research area", Field: "title"}
	}
	res, err := s.db.ExecContext(ctx, `update research set title = ?, description = ?
		where research_id = ?`, r.Title, r.Description, id)
	if err != nil {
		return ResearchArea{}, fmt.Errorf("unable to update research area %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ResearchArea{}, RecordNotFound{Kind: "research area", ID: id}
	}
	r.ID = id
	return r, nil
}

// DeleteResearchArea removes the research area identified by id.
func (s *Store) DeleteResearchArea(ctx context.Context, id int64) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from research where research_id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete research area %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "research area", ID: id}
	}
	return nil
}
