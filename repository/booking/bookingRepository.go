package booking

import (
	"context"
	"database/sql"
	"time"

	"fieldrental/model"
)

// AdminRow is the joined admin listing shape.
type AdminRow struct {
	BookingID  int64               `json:"booking_id"`
	Status     model.BookingStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UserName   string              `json:"user_name"`
	UserEmail  string              `json:"user_email"`
	FieldName  string              `json:"field_name"`
	FieldPrice float64             `json:"field_price"`
	StartTime  time.Time           `json:"start_time"`
	EndTime    time.Time           `json:"end_time"`
}

type Repo interface {
	FieldExists(ctx context.Context, fieldID int64) (bool, error)

	SlotForUpdate(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error)
	SlotHasActiveBooking(ctx context.Context, tx *sql.Tx, slotID int64) (bool, error)
	Insert(ctx context.Context, tx *sql.Tx, userID, fieldID, slotID int64) (*model.Booking, error)

	ForUpdate(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error)
	SetStatus(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error)

	ListAll(ctx context.Context) ([]AdminRow, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)

	CancelExpiredPending(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) FieldExists(ctx context.Context, fieldID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM fields WHERE id = $1)`, fieldID).Scan(&ok)
	return ok, err
}

func (r *repo) SlotForUpdate(ctx context.Context, tx *sql.Tx, slotID int64) (*model.TimeSlot, error) {
	s := &model.TimeSlot{}
	err := tx.QueryRowContext(ctx, `
		SELECT id, field_id, date, start_time, end_time
		FROM time_slots
		WHERE id = $1
		FOR UPDATE`,
		slotID,
	).Scan(&s.ID, &s.FieldID, &s.Date, &s.StartTime, &s.EndTime)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) SlotHasActiveBooking(ctx context.Context, tx *sql.Tx, slotID int64) (bool, error) {
	var ok bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE slot_id = $1
			AND status IN ('PENDING','CONFIRMED'))`,
		slotID).Scan(&ok)
	return ok, err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, userID, fieldID, slotID int64) (*model.Booking, error) {
	b := &model.Booking{UserID: userID, FieldID: fieldID, SlotID: slotID}
	err := tx.QueryRowContext(ctx, `
		INSERT INTO bookings(user_id, field_id, slot_id, status)
		VALUES ($1,$2,$3,'PENDING')
		RETURNING id, status, created_at`,
		userID, fieldID, slotID,
	).Scan(&b.ID, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) ForUpdate(ctx context.Context, tx *sql.Tx, bookingID int64) (*model.Booking, error) {
	b := &model.Booking{}
	err := tx.QueryRowContext(ctx, `
		SELECT id, user_id, field_id, slot_id, status, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`,
		bookingID,
	).Scan(&b.ID, &b.UserID, &b.FieldID, &b.SlotID, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
	b := &model.Booking{}
	err := tx.QueryRowContext(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		RETURNING id, user_id, field_id, slot_id, status, created_at`,
		bookingID, status,
	).Scan(&b.ID, &b.UserID, &b.FieldID, &b.SlotID, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) ListAll(ctx context.Context) ([]AdminRow, error) {
	const q = `
		SELECT
			b.id         AS booking_id,
			b.status     AS status,
			b.created_at AS created_at,
			u.name       AS user_name,
			u.email      AS user_email,
			f.name       AS field_name,
			f.price      AS field_price,
			s.start_time AS start_time,
			s.end_time   AS end_time
		FROM bookings b
		JOIN users u      ON u.id = b.user_id
		JOIN fields f     ON f.id = b.field_id
		JOIN time_slots s ON s.id = b.slot_id
		ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdminRow
	for rows.Next() {
		var a AdminRow
		if err := rows.Scan(
			&a.BookingID, &a.Status, &a.CreatedAt,
			&a.UserName, &a.UserEmail,
			&a.FieldName, &a.FieldPrice,
			&a.StartTime, &a.EndTime,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, field_id, slot_id, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.FieldID, &b.SlotID, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings b
		SET status = 'CANCELLED'
		FROM time_slots s
		WHERE s.id = b.slot_id
		AND b.status = 'PENDING'
		AND s.end_time < $1`,
		now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
