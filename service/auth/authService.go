package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"fieldrental/model"
	authrepo "fieldrental/repository/auth"
	"fieldrental/util/hash"
	jwtutil "fieldrental/util/jwt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrBadInput      = errors.New("bad input")
)

// TokenTTL is the session lifetime, mirrored by the cookie max-age.
const TokenTTL = time.Hour

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)
	RegisterAdmin(ctx context.Context, req model.RegisterReq) (*model.User, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
	ListAdmins(ctx context.Context) ([]model.User, error)
}

type service struct {
	r      authrepo.Repo
	secret string
}

func New(r authrepo.Repo, secret string) Service { return &service{r: r, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	return s.register(ctx, req, model.RoleUser)
}

func (s *service) RegisterAdmin(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	return s.register(ctx, req, model.RoleAdmin)
}

func (s *service) register(ctx context.Context, req model.RegisterReq, role model.Role) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Name == "" || len(req.Password) < 6 {
		return nil, ErrBadInput
	}

	existing, err := s.r.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.r.Create(ctx, u); err != nil {
		// Backstop for the register/register race on the same email.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}

	u, err := s.r.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrUserNotFound
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrWrongPassword
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) ListAdmins(ctx context.Context) ([]model.User, error) {
	return s.r.ListAdmins(ctx)
}
