package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

// categoryRow stores the nested parts of a category as JSONB.
type categoryRow struct {
	model.BaseModel
	Name               string         `db:"name"`
	PriceConfiguration types.JSONText `db:"price_configuration"`
	Attributes         types.JSONText `db:"attributes"`
}

func newCategoryRow(c *model.Category) (*categoryRow, error) {
	pc := c.PriceConfiguration
	if pc == nil {
		pc = model.PriceConfiguration{}
	}
	attrs := c.Attributes
	if attrs == nil {
		attrs = []model.Attribute{}
	}
	pcJSON, err := json.Marshal(pc)
	if err != nil {
		return nil, err
	}
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return &categoryRow{
		BaseModel:          c.BaseModel,
		Name:               c.Name,
		PriceConfiguration: types.JSONText(pcJSON),
		Attributes:         types.JSONText(attrsJSON),
	}, nil
}

func (row *categoryRow) toModel() (*model.Category, error) {
	c := &model.Category{BaseModel: row.BaseModel, Name: row.Name}
	if err := row.PriceConfiguration.Unmarshal(&c.PriceConfiguration); err != nil {
		return nil, err
	}
	if err := row.Attributes.Unmarshal(&c.Attributes); err != nil {
		return nil, err
	}
	return c, nil
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now

	row, err := newCategoryRow(c)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO categories (id, name, price_configuration, attributes, created_at, updated_at)
        VALUES (:id, :name, :price_configuration, :attributes, :created_at, :updated_at)
    `
	_, err = r.DB.NamedExecContext(ctx, query, row)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var row categoryRow
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var rows []categoryRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT * FROM categories ORDER BY created_at ASC`); err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	if _, err := uuid.Parse(c.ID); err != nil {
		return nil, nil
	}
	row, err := newCategoryRow(c)
	if err != nil {
		return nil, err
	}
	row.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE categories
        SET name = :name,
            price_configuration = :price_configuration,
            attributes = :attributes,
            updated_at = :updated_at
        WHERE id = :id
        RETURNING *
    `
	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var updated categoryRow
	if err := nstmt.GetContext(ctx, &updated, row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return updated.toModel()
}

func (r *PGRepository) Delete(ctx context.Context, id string) (*model.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var row categoryRow
	if err := r.DB.GetContext(ctx, &row, `DELETE FROM categories WHERE id = $1 RETURNING *`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}
