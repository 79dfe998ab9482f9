package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"fieldrental/model"
	bookingrepo "fieldrental/repository/booking"
	"fieldrental/repository/webhook"
	"fieldrental/util/metrics"
)

// errors used by controllers

type ErrCode string

const (
	ErrFieldNotFound    ErrCode = "FIELD_NOT_FOUND"
	ErrSlotNotFound     ErrCode = "SLOT_NOT_FOUND"
	ErrSlotTaken        ErrCode = "SLOT_TAKEN"
	ErrBookingNotFound  ErrCode = "BOOKING_NOT_FOUND"
	ErrNotOwner         ErrCode = "NOT_OWNER"
	ErrConfirmed        ErrCode = "CONFIRMED"
	ErrAlreadyCancelled ErrCode = "ALREADY_CANCELLED"
	ErrAlreadyDecided   ErrCode = "ALREADY_DECIDED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, empty for unexpected errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// AdminRow = repository shape
type AdminRow = bookingrepo.AdminRow

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

type Service interface {
	// Create books a slot for the user, starting in PENDING.
	Create(ctx context.Context, userID, fieldID, slotID int64) (*model.Booking, error)

	// Approve: admin decision PENDING -> CONFIRMED.
	Approve(ctx context.Context, bookingID int64) (*model.Booking, error)

	// Reject: admin decision, any non-terminal state -> CANCELLED.
	Reject(ctx context.Context, bookingID int64) (*model.Booking, error)

	// Cancel: the owning user cancels a booking that is not yet decided.
	Cancel(ctx context.Context, userID, bookingID int64) (*model.Booking, error)

	ListAll(ctx context.Context) ([]AdminRow, error)
	MyBookings(ctx context.Context, userID int64) ([]model.Booking, error)
}

// ----- Service implementation -----

type service struct {
	db  *sql.DB
	r   Repo
	w   webhook.Repo
	log *slog.Logger
}

func New(db *sql.DB, r Repo, w webhook.Repo, log *slog.Logger) Service {
	return &service{db: db, r: r, w: w, log: log}
}

func (s *service) Create(ctx context.Context, userID, fieldID, slotID int64) (b *model.Booking, err error) {
	exists, err := s.r.FieldExists(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrFieldNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	slot, err := s.r.SlotForUpdate(ctx, tx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrSlotNotFound)
		}
		return nil, err
	}
	if slot.FieldID != fieldID {
		return nil, makeErr(ErrSlotNotFound)
	}

	taken, err := s.r.SlotHasActiveBooking(ctx, tx, slotID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, makeErr(ErrSlotTaken)
	}

	b, err = s.r.Insert(ctx, tx, userID, fieldID, slotID)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.notify(b)
	return b, nil
}

func (s *service) Approve(ctx context.Context, bookingID int64) (*model.Booking, error) {
	b, err := s.decide(ctx, bookingID, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	metrics.IncBookingDecision("approve")
	s.notify(b)
	return b, nil
}

func (s *service) Reject(ctx context.Context, bookingID int64) (*model.Booking, error) {
	b, err := s.decide(ctx, bookingID, model.BookingCancelled)
	if err != nil {
		return nil, err
	}
	metrics.IncBookingDecision("reject")
	s.notify(b)
	return b, nil
}

// decide applies an admin transition under a row lock. A CANCELLED booking
// is terminal for admins too.
func (s *service) decide(ctx context.Context, bookingID int64, to model.BookingStatus) (b *model.Booking, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err = s.r.ForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookingNotFound)
		}
		return nil, err
	}
	if b.Status == model.BookingCancelled {
		return nil, makeErr(ErrAlreadyDecided)
	}

	b, err = s.r.SetStatus(ctx, tx, bookingID, to)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int64) (b *model.Booking, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err = s.r.ForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookingNotFound)
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, makeErr(ErrNotOwner)
	}
	switch b.Status {
	case model.BookingConfirmed:
		return nil, makeErr(ErrConfirmed)
	case model.BookingCancelled:
		return nil, makeErr(ErrAlreadyCancelled)
	}

	b, err = s.r.SetStatus(ctx, tx, bookingID, model.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled()
	s.notify(b)
	return b, nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminRow, error) {
	return s.r.ListAll(ctx)
}

func (s *service) MyBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	return s.r.ListByUser(ctx, userID)
}

// notify is fire-and-forget; a webhook failure never fails the request.
func (s *service) notify(b *model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	go func() {
		defer cancel()
		ev := webhook.Event{BookingID: b.ID, UserID: b.UserID, Status: string(b.Status)}
		if err := s.w.Notify(ctx, ev); err != nil {
			s.log.Warn("booking webhook failed", "booking_id", b.ID, "err", err)
		}
	}()
}
