package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/leapscale/internal/scale"
)

// Record is a stored instant.
type Record struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Instant scale.UTCInstant `json:"instant"`
	Seq     int64            `json:"seq"`
}

// Save stores u under label and returns the new record.
//
// The label is NFC-normalized and must not be blank. The record gets a
// fresh id and the next sequence number.
func (s *Store) Save(ctx context.Context, label string, u scale.UTCInstant) (Record, error) {
	label = norm.NFC.String(strings.TrimSpace(label))
	if label == "" {
		return Record{}, fmt.Errorf("save instant: label must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("save instant: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM instants`).Scan(&seq); err != nil {
		return Record{}, fmt.Errorf("save instant: next seq: %w", err)
	}

	rec := Record{ID: s.ids.Generate(), Label: label, Instant: u, Seq: seq}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO instants (id, label, mjd, nano_of_day, seq)
		VALUES (?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Label,
		u.ModifiedJulianDay(),
		u.NanoOfDay(),
		rec.Seq,
	)
	if err != nil {
		return Record{}, fmt.Errorf("save instant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("save instant: commit: %w", err)
	}
	return rec, nil
}

// Delete removes the record with the given id.
// Returns an error wrapping sql.ErrNoRows if there is no such record.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM instants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete instant %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete instant %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete instant %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
