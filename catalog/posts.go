package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Post is a news entry on the group blog.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Image   string `json:"image"`
}

func (p Post) validate() error {
	err := requireFields(map[string]string{
		"title":   p.Title,
		"summary": p.Summary,
		"content": p.Content,
		"author":  p.Author,
		"date":    p.Date,
	})
	if err != nil {
		return err
	}
	if err := validDate("date", p.Date); err != nil {
		return err
	}
	if err := maxLen("title", p.Title, 200); err != nil {
		return err
	}
	return maxLen("summary", p.Summary, 500)
}

// ListPosts returns every post, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `select post_id, title, summary, content, author, date, image
		from posts order by date desc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list posts, cause %w", err)
	}
	defer rows.Close()
	out := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Summary, &p.Content, &p.Author, &p.Date, &p.Image); err != nil {
			return nil, fmt.Errorf("unable to scan post, cause %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Post loads one post by id.
func (s *Store) Post(ctx context.Context, id int64) (Post, error) {
	var p Post
	err := s.db.QueryRowContext(ctx, `select post_id, title, summary, content, author, date, image
		from posts where post_id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Summary, &p.Content, &p.Author, &p.Date, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, RecordNotFound{Kind: "post", ID: id}
	} else if err != nil {
		return Post{}, fmt.Errorf("unable to load post %v, cause %w", id, err)
	}
	return p, nil
}

// CreatePost validates and stores a new post.
func (s *Store) CreatePost(ctx context.Context, p Post) (Post, error) {
	if err := s.guardWrite(); err != nil {
		return Post{}, err
	}
	if err := p.validate(); err != nil {
		return Post{}, err
	}
	res, err := s.db.ExecContext(ctx, `insert into posts (title, summary, content, author, date, image)
		values (?, ?, ?, ?, ?, ?)`, p.Title, p.Summary, p.Content, p.Author, p.Date, p.Image)
	if err != nil {
		return Post{}, fmt.Errorf("unable to store post, cause %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return Post{}, fmt.Errorf("unable to read post id, cause %w", err)
	}
	return p, nil
}

// UpdatePost replaces the post identified by id.
func (s *Store) UpdatePost(ctx context.Context, id int64, p Post) (Post, error) {
	if err := s.guardWrite(); err != nil {
		return Post{}, err
	}
	if err := p.validate(); err != nil {
		return Post{}, err
	}
	res, err := s.db.ExecContext(ctx, `update posts
		set title = ?, summary = ?, content = ?, author = ?, date = ?, image = ?
		where post_id = ?`, p.Title, p.Summary, p.Content, p.Author, p.Date, p.Image, id)
	if err != nil {
		return Post{}, fmt.Errorf("unable to update post %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Post{}, RecordNotFound{Kind: "post", ID: id}
	}
	p.ID = id
	return p, nil
}

// DeletePost removes the post identified by id.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from posts where post_id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete post %v, cause %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "post", ID: id}
	}
	return nil
}
