package field

import (
	"context"
	"database/sql"

	"fieldrental/model"
)

type Repo interface {
	Create(ctx context.Context, f *model.Field) error
	List(ctx context.Context) ([]model.Field, error)
	ByID(ctx context.Context, id int64) (*model.Field, error)
	Update(ctx context.Context, f *model.Field) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, f *model.Field) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO fields(name, description, price)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		f.Name, f.Description, f.Price,
	).Scan(&f.ID, &f.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Field, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, created_at
		FROM fields
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Field
	for rows.Next() {
		var f model.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Field, error) {
	f := &model.Field{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, created_at
		FROM fields
		WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *repo) Update(ctx context.Context, f *model.Field) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fields
		SET name = $2, description = $3, price = $4
		WHERE id = $1`,
		f.ID, f.Name, f.Description, f.Price)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
