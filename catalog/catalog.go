// Package catalog is the persistent content store behind the research
// group website: events, posts, projects, publications, research areas,
// team members, plus the users table that holds the admin credential.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type (
	// Store wraps the sqlite database that backs the site content. All
	// methods are safe for concurrent use; sqlite serializes writers
	// internally and the store keeps no mutable state of its own.
	Store struct {
		db        *sql.DB
		writeable bool
	}
)

func openCatalogDatabase(ctx context.Context, dir string, readwrite bool) (*sql.DB, error) {
	dbfile := filepath.Join(dir, "catalog.db")
	if readwrite {
		err := os.MkdirAll(filepath.Dir(dbfile), 0755)
		if err != nil {
			return nil, fmt.Errorf("unable to create directory %v to store the catalog, cause %w", dir, err)
		}
	}
	var connstr string
	if readwrite {
		connstr = fmt.Sprintf("file:%v?_writable_schema=false&_journal=wal&_fk=true&mode=rwc", dbfile)
	} else {
		connstr = fmt.Sprintf("file:%v?_writable_schema=false&_fk=true&mode=ro", dbfile)
	}
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", dbfile, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping catalog %v, cause %w", dbfile, err)
	}
	return conn, nil
}

// Open loads the catalog stored under dir, creating the database and its
// schema when opened in readwrite mode.
func Open(ctx context.Context, dir string, readwrite bool) (*Store, error) {
	conn, err := openCatalogDatabase(ctx, dir, readwrite)
	if err != nil {
		return nil, err
	}
	s := &Store{db: conn, writeable: readwrite}
	if readwrite {
		if err := s.init(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("unable to init catalog at %v, cause %w", dir, err)
		}
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	stmts := []string{
		`create table if not exists users(
			user_id integer primary key autoincrement,
			username text not null unique,
			password_hash text not null)`,
		`create table if not exists events(
			event_id integer primary key autoincrement,
			title text not null,
			description text not null,
			date text not null,
			time text not null,
			location text not null default '')`,
		`create table if not exists posts(
			post_id integer primary key autoincrement,
			title text not null,
			summary text not null,
			content text not null,
			author text not null,
			date text not null,
			image text not null default '')`,
		`create table if not exists projects(
			project_id integer primary key autoincrement,
			title text not null,
			description text not null,
			status text not null,
			start_date text not null,
			end_date text not null default '',
			image text not null default '')`,
		`create table if not exists publications(
			publication_id integer primary key autoincrement,
			title text not null,
			authors text not null,
			journal text not null,
			year integer not null,
			doi text not null default '',
			description text not null default '')`,
		`create table if not exists research(
			research_id integer primary key autoincrement,
			title text not null unique,
			description text not null)`,
		`create table if not exists team(
			member_id integer primary key autoincrement,
			name text not null unique,
			role text not null default '',
			specialization text not null,
			category text not null default '',
			image text not null default '',
			linkedin text not null default '')`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("unable to run schema statement, cause %w", err)
		}
	}
	return nil
}

func (s *Store) guardWrite() error {
	if !s.writeable {
		return ReadOnlyStore{}
	}
	return nil
}
