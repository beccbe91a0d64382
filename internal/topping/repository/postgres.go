package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, t *model.Topping) error {
	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
        INSERT INTO toppings (id, name, price, image, tenant_id, is_publish, created_at, updated_at)
        VALUES (:id, :name, :price, :image, :tenant_id, :is_publish, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Topping, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var t model.Topping
	if err := r.DB.GetContext(ctx, &t, `SELECT * FROM toppings WHERE id = $1 LIMIT 1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) FindAll(ctx context.Context, filters *dto.ToppingFilters) ([]model.Topping, int64, error) {
	where := `WHERE tenant_id = $1`
	args := []interface{}{filters.TenantID}
	if filters.Query != "" {
		where += ` AND name ILIKE $2`
		args = append(args, "%"+likeEscaper.Replace(filters.Query)+"%")
	}

	var total int64
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM toppings `+where, args...); err != nil {
		return nil, 0, err
	}

	toppings := []model.Topping{}
	if total == 0 {
		return toppings, 0, nil
	}

	n := len(args)
	query := `SELECT * FROM toppings ` + where +
		` ORDER BY created_at ASC, id ASC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, filters.Limit, filters.Offset())
	if err := r.DB.SelectContext(ctx, &toppings, query, args...); err != nil {
		return nil, 0, err
	}
	return toppings, total, nil
}

// Update leaves columns whose input field is nil untouched.
func (r *PGRepository) Update(ctx context.Context, input *dto.UpdateToppingInput) (*model.Topping, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, nil
	}
	query := `
        UPDATE toppings
        SET name = COALESCE($2, name),
            price = COALESCE($3, price),
            image = COALESCE($4, image),
            tenant_id = COALESCE($5, tenant_id),
            is_publish = COALESCE($6, is_publish),
            updated_at = $7
        WHERE id = $1
        RETURNING *
    `
	var t model.Topping
	err := r.DB.GetContext(ctx, &t, query,
		input.ID, input.Name, input.Price, input.Image, input.TenantID, input.IsPublish, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) (*model.Topping, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var t model.Topping
	if err := r.DB.GetContext(ctx, &t, `DELETE FROM toppings WHERE id = $1 RETURNING *`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
