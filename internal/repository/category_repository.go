package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-event-ticketing/internal/model"
	apperrors "go-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	FindByID(ctx context.Context, id int) (*model.Category, error)
	Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type CategoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &CategoryRepositoryImpl{
		pool: pool,
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`

	err := r.pool.QueryRow(ctx, query, category.Name, category.Description).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*model.Category, 0)
	for rows.Next() {
		var category model.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories
		WHERE id = $1
	`

	var category model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE id = $%d
		RETURNING id, name, description, created_at
	`, strings.Join(sets, ", "), argPos)

	var category model.Category
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// The restrict FK from events refuses deletion while events still
		// reference this category.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrCategoryInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
