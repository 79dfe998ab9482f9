package fieldsvc

import (
	"context"
	"errors"

	"fieldrental/model"
	fieldrepo "fieldrental/repository/field"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "FIELD_NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
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

type Service interface {
	Create(ctx context.Context, name, description string, price float64) (*model.Field, error)
	List(ctx context.Context) ([]model.Field, error)
	Update(ctx context.Context, id int64, name, description string, price float64) (*model.Field, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r fieldrepo.Repo }

func New(r fieldrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, description string, price float64) (*model.Field, error) {
	if name == "" || price < 0 {
		return nil, makeErr(ErrBadInput)
	}
	f := &model.Field{Name: name, Description: description, Price: price}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context) ([]model.Field, error) { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, id int64, name, description string, price float64) (*model.Field, error) {
	if name == "" || price < 0 {
		return nil, makeErr(ErrBadInput)
	}
	f := &model.Field{ID: id, Name: name, Description: description, Price: price}
	ok, err := s.r.Update(ctx, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNotFound)
	}
	return s.r.ByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}
