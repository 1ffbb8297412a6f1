package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Publication is a peer-reviewed paper authored by the group.
type Publication struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Journal     string `json:"journal"`
	Year        int    `json:"year"`
	DOI         string `json:"doi"`
	Description string `json:"description"`
}

func (p Publication) validate() error {
	err := requireFields(map[string]string{
		"title":   p.Title,
		"authors": p.Authors,
		"journal": p.Journal,
	})
	if err != nil {
		return err
	}
	// next year is allowed: accepted papers are often listed ahead of print
	maxYear := time.Now().Year() + 1
	if p.Year < 1900 || p.Year > maxYear {
		return InvalidRecord{Reason: fmt.Sprintf("year must be between 1900 and %v", maxYear)}
	}
	if p.DOI != "" && !doiRE.MatchString(p.DOI) {
		return InvalidRecord{Reason: "invalid DOI format, example: 10.1234/example"}
	}
	if err := maxLen("title", p.Title, 500); err != nil {
		return err
	}
	if err := maxLen("authors", p.Authors, 500); err != nil {
		return err
	}
	return maxLen("journal", p.Journal, 200)
}

// ListPublications returns every publication, newest year first.
func (s *Store) ListPublications(ctx context.Context) ([]Publication, error) {
	rows, err := s.db.QueryContext(ctx, `select publication_id, title, authors, journal, year, doi, description
		from publications order by year desc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list publications, cause %w", err)
	}
	defer rows.Close()
	out := []Publication{}
	for rows.Next() {
		var p Publication
		if err := rows.Scan(&p.ID, &p.Title, &p.Authors, &p.Journal, &p.Year, &p.DOI, &p.Description); err != nil {
			return nil, fmt.Errorf("unable to scan publication, cause %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Publication loads one publication by id.
func (s *Store) Publication(ctx context.Context, id int64) (Publication, error) {
	var p Publication
	err := s.db.QueryRowContext(ctx, `select publication_id, title, authors, journal, year, doi, description
		from publications where publication_id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Authors, &p.Journal, &p.Year, &p.DOI, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Publication{}, RecordNotFound{Kind: "publication", ID: id}
	} else if err != nil {
		return Publication{}, fmt.Errorf("unable to load publication %v, cause %w", id, err)
	}
	return p, nil
}

// CreatePublication validates and stores a new publication.
func (s *Store) CreatePublication(ctx context.Context, p Publication) (Publication, error) {
	if err := s.guardWrite(); err != nil {
		return Publication{}, err
	}
	if err := p.validate(); err != nil {
		return Publication{}, err
	}
	res, err := s.db.ExecContext(ctx, `insert into publications (title, authors, journal, year, doi, description)
		values (?, ?, ?, ?, ?, ?)`, p.Title, p.Authors, p.Journal, p.Year, p.DOI, p.Description)
	if err != nil {
		return Publication{}, fmt.Errorf("unable to store publication, cause %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return Publication{}, fmt.Errorf("unable to read publication id, cause %w", err)
	}
	return p, nil
}

// UpdatePublication replaces the publication identified by id.
func (s *Store) UpdatePublication(ctx context.Context, id int64, p Publication) (Publication, error) {
	if err := s.guardWrite(); err != nil {
		return Publication{}, err
	}
	if err := p.validate(); err != nil {
		return Publication{}, err
	}
	res, err := s.db.ExecContext(ctx, `update publications
		set title = ?, authors = ?, journal = ?, year = ?, doi = ?, description = ?
		where publication_id = ?`, p.Title, p.Authors, p.Journal, p.Year, p.DOI, p.Description, id)
	if err != nil {
		return Publication{}, fmt.Errorf("unable to update publication %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Publication{}, RecordNotFound{Kind: "publication", ID: id}
	}
	p.ID = id
	return p, nil
}

// DeletePublication removes the publication identified by id.
func (s *Store) DeletePublication(ctx context.Context, id int64) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from publications where publication_id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete publication %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "publication", ID: id}
	}
	return nil
}
