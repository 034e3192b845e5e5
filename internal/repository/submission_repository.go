package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/contact-funnel/internal/domain"
)

// SubmissionRepository encapsulates form submission persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.FormSubmission) error
	Update(ctx context.Context, sub *domain.FormSubmission) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.FormSubmission, error)
	List(ctx context.Context) ([]domain.FormSubmission, error)
}

type submissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository instantiates repository.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

func (r *submissionRepository) Create(ctx context.Context, sub *domain.FormSubmission) error {
	const query = `
        INSERT INTO form_submissions (name, email, subject, message, first_name, last_name, mobile, city, service, form_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		sub.Name,
		sub.Email,
		sub.Subject,
		sub.Message,
		sub.FirstName,
		sub.LastName,
		sub.Mobile,
		sub.City,
		sub.Service,
		sub.FormType,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *submissionRepository) Update(ctx context.Context, sub *domain.FormSubmission) error {
	const query = `
        UPDATE form_submissions SET name=$1, email=$2, subject=$3, message=$4, first_name=$5,
            last_name=$6, mobile=$7, city=$8, service=$9, form_type=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		sub.Name,
		sub.Email,
		sub.Subject,
		sub.Message,
		sub.FirstName,
		sub.LastName,
		sub.Mobile,
		sub.City,
		sub.Service,
		sub.FormType,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM form_submissions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.FormSubmission, error) {
	const query = `
        SELECT id, name, email, subject, message, first_name, last_name, mobile, city, service, form_type, created_at, updated_at
        FROM form_submissions WHERE id=$1`

	var sub domain.FormSubmission
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.Name,
		&sub.Email,
		&sub.Subject,
		&sub.Message,
		&sub.FirstName,
		&sub.LastName,
		&sub.Mobile,
		&sub.City,
		&sub.Service,
		&sub.FormType,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns all submissions newest-first.
func (r *submissionRepository) List(ctx context.Context) ([]domain.FormSubmission, error) {
	const query = `
        SELECT id, name, email, subject, message, first_name, last_name, mobile, city, service, form_type, created_at, updated_at
        FROM form_submissions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.FormSubmission
	for rows.Next() {
		var sub domain.FormSubmission
		if err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Email,
			&sub.Subject,
			&sub.Message,
			&sub.FirstName,
			&sub.LastName,
			&sub.Mobile,
			&sub.City,
			&sub.Service,
			&sub.FormType,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
