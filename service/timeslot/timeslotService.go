package timeslotsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fieldrental/model"
)

type ErrCode string

const (
	ErrFieldNotFound ErrCode = "FIELD_NOT_FOUND"
	ErrBadRange      ErrCode = "BAD_RANGE"
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

type SlotRepo interface {
	BulkInsert(ctx context.Context, fieldID int64, date time.Time, starts []time.Time) ([]model.TimeSlot, error)
	ListByField(ctx context.Context, fieldID int64) ([]model.TimeSlot, error)
}

type FieldRepo interface {
	ByID(ctx context.Context, id int64) (*model.Field, error)
}

// FieldSlots is the catalog view: the field plus its slots.
type FieldSlots struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Slots       []model.TimeSlot `json:"slots"`
}

type Service interface {
	// CreateSlots generates one slot per hour in [startHour, endHour) on date.
	CreateSlots(ctx context.Context, fieldID int64, date time.Time, startHour, endHour int) (*FieldSlots, error)
	FieldSlots(ctx context.Context, fieldID int64) (*FieldSlots, error)
}

type service struct {
	slots  SlotRepo
	fields FieldRepo
}

func New(slots SlotRepo, fields FieldRepo) Service {
	return &service{slots: slots, fields: fields}
}

func (s *service) CreateSlots(ctx context.Context, fieldID int64, date time.Time, startHour, endHour int) (*FieldSlots, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, makeErr(ErrBadRange)
	}

	f, err := s.field(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	// Time-of-day on the incoming date is ignored, the hour range decides.
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	starts := make([]time.Time, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		starts = append(starts, day.Add(time.Duration(h)*time.Hour))
	}

	created, err := s.slots.BulkInsert(ctx, fieldID, day, starts)
	if err != nil {
		return nil, err
	}
	return view(f, created), nil
}

func (s *service) FieldSlots(ctx context.Context, fieldID int64) (*FieldSlots, error) {
	f, err := s.field(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListByField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return view(f, slots), nil
}

func (s *service) field(ctx context.Context, id int64) (*model.Field, error) {
	f, err := s.fields.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrFieldNotFound)
		}
		return nil, err
	}
	return f, nil
}

func view(f *model.Field, slots []model.TimeSlot) *FieldSlots {
	return &FieldSlots{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Slots:       slots,
	}
}
