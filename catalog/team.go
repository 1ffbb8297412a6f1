package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TeamMember is one person on the group roster. Names are unique within
// the roster.
type TeamMember struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
	Category       string `json:"category"`
	Image          string `json:"image"`
	Linkedin       string `json:"linkedin"`
}

func (m TeamMember) validate() error {
	err := requireFields(map[string]string{
		"name":           m.Name,
		"specialization": m.Specialization,
	})
	if err != nil {
		return err
	}
	if err := maxLen("name", m.Name, 200); err != nil {
		return err
	}
	if err := maxLen("specialization", m.Specialization, 300); err != nil {
		return err
	}
	if m.Linkedin != "" && !linkedinRE.MatchString(m.Linkedin) {
		return InvalidRecord{Reason: "invalid LinkedIn URL, example: https://linkedin.com/in/username"}
	}
	return nil
}

// ListTeam returns every team member, ordered by name.
func (s *Store) ListTeam(ctx context.Context) ([]TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, `select member_id, name, role, specialization, category, image, linkedin
		from team order by name asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list team members, cause %w", err)
	}
	defer rows.Close()
	out := []TeamMember{}
	for rows.Next() {
		var m TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Specialization, &m.Category, &m.Image, &m.Linkedin); err != nil {
			return nil, fmt.Errorf("unable to scan team member, cause %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TeamMember loads one team member by id.
func (s *Store) TeamMember(ctx context.Context, id int64) (TeamMember, error) {
	var m TeamMember
	err := s.db.QueryRowContext(ctx, `select member_id, name, role, specialization, category, image, linkedin
		from team where member_id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Role, &m.Specialization, &m.Category, &m.Image, &m.Linkedin)
	if errors.Is(err, sql.ErrNoRows) {
		return TeamMember{}, RecordNotFound{Kind: "team member", ID: id}
	} else if err != nil {
		return TeamMember{}, fmt.Errorf("unable to load team member %v, cause %w", id, err)
	}
	return m, nil
}

func (s *Store) memberNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `select member_id from team
		where name = ? and member_id <> ?`, name, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("unable to check team member name, cause %w", err)
	}
	return true, nil
}

// CreateTeamMember validates and stores a new team member, rejecting
// duplicate names.
func (s *Store) CreateTeamMember(ctx context.Context, m TeamMember) (TeamMember, error) {
	if err := s.guardWrite(); err != nil {
		return TeamMember{}, err
	}
	if err := m.validate(); err != nil {
		return TeamMember{}, err
	}
	taken, err := s.memberNameTaken(ctx, m.Name, 0)
	if err != nil {
		return TeamMember{}, err
	}
	if taken {
		return TeamMember{}, DuplicateRecord{Kind: "team member", Field: "name"}
	}
	res, err := s.db.ExecContext(ctx, `insert into team (name, role, specialization, category, image, linkedin)
		values (?, ?, ?, ?, ?, ?)`, m.Name, m.Role, m.Specialization, m.Category, m.Image, m.Linkedin)
	if err != nil {
		return TeamMember{}, fmt.Errorf("unable to store team member, cause %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return TeamMember{}, fmt.Errorf("unable to read team member id, cause %w", err)
	}
	return m, nil
}

// UpdateTeamMember replaces the team member identified by id.
func (s *Store) UpdateTeamMember(ctx context.Context, id int64, m TeamMember) (TeamMember, error) {
	if err := s.guardWrite(); err != nil {
		return TeamMember{}, err
	}
	if err := m.validate(); err != nil {
		return TeamMember{}, err
	}
	taken, err := s.memberNameTaken(ctx, m.Name, id)
	if err != nil {
		return TeamMember{}, err
	}
	if taken {
		return TeamMember{}, DuplicateRecord{Kind: "team member", Field: "name"}
	}
	res, err := s.db.ExecContext(ctx, `update team
		set name = ?, role = ?, specialization = ?, category = ?, image = ?, linkedin = ?
		where member_id = ?`, m.Name, m.Role, m.Specialization, m.Category, m.Image, m.Linkedin, id)
	if err != nil {
		return TeamMember{}, fmt.Errorf("unable to update team member %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return TeamMember{}, RecordNotFound{Kind: "team member", ID: id}
	}
	m.ID = id
	return m, nil
}

// DeleteTeamMember removes the team member identified by id.
func (s *Store) DeleteTeamMember(ctx context.Context, id int64) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from team where member_id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete team member %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "team member", ID: id}
	}
	return nil
}
