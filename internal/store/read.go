package store

import (
	"context"
	"fmt"

	"github.com/roach88/leapscale/internal/scale"
)

const selectRecord = `SELECT id, label, mjd, nano_of_day, seq FROM instants`

// Get retrieves a single record by id.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id)
	rec, err := s.scan(row)
	if err != nil {
		return Record{}, fmt.Errorf("get instant %s: %w", id, err)
	}
	return rec, nil
}

// List returns every record in time order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	return s.query(ctx, "list instants", selectRecord+`
		ORDER BY mjd ASC, nano_of_day ASC, id COLLATE BINARY ASC
	`)
}

// Between returns the records with from <= instant < to, in time order.
func (s *Store) Between(ctx context.Context, from, to scale.UTCInstant) ([]Record, error) {
	return s.query(ctx, "instants between", selectRecord+`
		WHERE (mjd > ? OR (mjd = ? AND nano_of_day >= ?))
		  AND (mjd < ? OR (mjd = ? AND nano_of_day < ?))
		ORDER BY mjd ASC, nano_of_day ASC, id COLLATE BINARY ASC
	`,
		from.ModifiedJulianDay(), from.ModifiedJulianDay(), from.NanoOfDay(),
		to.ModifiedJulianDay(), to.ModifiedJulianDay(), to.NanoOfDay(),
	)
}

func (s *Store) query(ctx context.Context, op, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", op, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row and rebuilds the instant under the store's rules.
func (s *Store) scan(row scanner) (Record, error) {
	var rec Record
	var mjd, nod int64
	if err := row.Scan(&rec.ID, &rec.Label, &mjd, &nod, &rec.Seq); err != nil {
		return Record{}, err
	}
	u, err := scale.NewUTCInstantWithRules(mjd, nod, s.rules)
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Instant = u
	return rec, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM instants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count instants: %w", err)
	}
	return n, nil
}
