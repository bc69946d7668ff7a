package subscribers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"dailymenu/internal/menu"
)

// Repository provides access to the subscriber table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new subscriber repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const subscriberColumns = `id, email, token, is_active, preferences, confirmed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row rowScanner) (*Subscriber, error) {
	var s Subscriber
	var prefs string
	var confirmedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.Email, &s.Token, &s.IsActive, &prefs, &confirmedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(prefs), &s.Preferences); err != nil {
		// An unreadable row selects nothing; the filter then sends it nothing.
		log.Warn().Err(err).Int64("subscriber_id", s.ID).Msg("malformed preferences, treating as empty")
		s.Preferences = menu.Preferences{}
	}
	if confirmedAt.Valid {
		s.ConfirmedAt = &confirmedAt.Time
	}
	return &s, nil
}

func encodePreferences(p menu.Preferences) (string, error) {
	// Store empty selections as [] rather than null.
	if p.Meals == nil {
		p.Meals = []menu.Meal{}
	}
	if p.Stations == nil {
		p.Stations = []string{}
	}
	b, err := json.Marshal(p)
	return string(b), err
}

// Create inserts an inactive subscriber with a fresh token.
// It returns ErrEmailTaken when the address is already stored.
func (r *Repository) Create(ctx context.Context, email string, prefs menu.Preferences) (*Subscriber, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	encoded, err := encodePreferences(prefs)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribers (email, token, is_active, preferences, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?, ?)`,
		email, token, encoded, now, now,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}
	return r.GetByToken(ctx, token)
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// GetByEmail returns the subscriber with the given email or ErrNotFound
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	return r.getOne(ctx, `SELECT `+subscriberColumns+` FROM subscribers WHERE email = ?`, email)
}

// GetByToken returns the subscriber with the given token or ErrNotFound
func (r *Repository) GetByToken(ctx context.Context, token string) (*Subscriber, error) {
	return r.getOne(ctx, `SELECT `+subscriberColumns+` FROM subscribers WHERE token = ?`, token)
}

func (r *Repository) getOne(ctx context.Context, query string, arg any) (*Subscriber, error) {
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// UpdatePreferences replaces the preferences of the subscriber owning token
func (r *Repository) UpdatePreferences(ctx context.Context, token string, prefs menu.Preferences) error {
	encoded, err := encodePreferences(prefs)
	if err != nil {
		return err
	}
	return r.execOne(ctx, `UPDATE subscribers SET preferences = ?, updated_at = ? WHERE token = ?`,
		encoded, time.Now().UTC(), token)
}

// Activate marks the subscriber as confirmed and active
func (r *Repository) Activate(ctx context.Context, token string) error {
	now := time.Now().UTC()
	return r.execOne(ctx, `
		UPDATE subscribers
		SET is_active = 1, confirmed_at = COALESCE(confirmed_at, ?), updated_at = ?
		WHERE token = ?`, now, now, token)
}

// Deactivate stops deliveries to the subscriber. The record and token are kept.
func (r *Repository) Deactivate(ctx context.Context, token string) error {
	return r.execOne(ctx, `UPDATE subscribers SET is_active = 0, updated_at = ? WHERE token = ?`,
		time.Now().UTC(), token)
}

func (r *Repository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns active subscribers ordered by id. A non-empty email
// restricts the result to that one address.
func (r *Repository) ListActive(ctx context.Context, email string) ([]Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE is_active = 1`
	var args []any
	if email != "" {
		query += ` AND email = ?`
		args = append(args, email)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

//   This project is the monolithic backend API for the OpenSourceDUTH team. Access to open data compiled and provided by the OpenSourceDUTH University Team.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
