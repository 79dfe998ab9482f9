package timeslot

import (
	"context"
	"database/sql"
	"time"

	"fieldrental/model"
)

type Repo interface {
	BulkInsert(ctx context.Context, fieldID int64, date time.Time, starts []time.Time) ([]model.TimeSlot, error)
	ListByField(ctx context.Context, fieldID int64) ([]model.TimeSlot, error)
	ByID(ctx context.Context, id int64) (*model.TimeSlot, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// BulkInsert inserts one hour-long slot per start time. Slots that already
// exist for (field, date, start) are skipped, only created rows come back.
func (r *repo) BulkInsert(ctx context.Context, fieldID int64, date time.Time, starts []time.Time) ([]model.TimeSlot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
		INSERT INTO time_slots(field_id, date, start_time, end_time)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (field_id, date, start_time) DO NOTHING
		RETURNING id, field_id, date, start_time, end_time`

	var out []model.TimeSlot
	for _, start := range starts {
		var s model.TimeSlot
		err = tx.QueryRowContext(ctx, q, fieldID, date, start, start.Add(time.Hour)).
			Scan(&s.ID, &s.FieldID, &s.Date, &s.StartTime, &s.EndTime)
		if err == sql.ErrNoRows {
			err = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListByField(ctx context.Context, fieldID int64) ([]model.TimeSlot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, field_id, date, start_time, end_time
		FROM time_slots
		WHERE field_id = $1
		ORDER BY start_time`,
		fieldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimeSlot
	for rows.Next() {
		var s model.TimeSlot
		if err := rows.Scan(&s.ID, &s.FieldID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.TimeSlot, error) {
	s := &model.TimeSlot{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, field_id, date, start_time, end_time
		FROM time_slots
		WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.FieldID, &s.Date, &s.StartTime, &s.EndTime)
	if err != nil {
		return nil, err
	}
	return s, nil
}
