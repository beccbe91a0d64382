package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toppingID = "0b8e3f0c-6d1f-4b9a-8d5e-2f7c1a4e9b30"

var toppingColumns = []string{"id", "name", "price", "image", "tenant_id", "is_publish", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPGRepository(sqlx.NewDb(mockDB, "pgx")), mock
}

func cheeseRow(tenant string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(toppingColumns).
		AddRow(toppingID, "Cheese", 50.0, "cheese.png", tenant, true, now, now)
}

func TestPGCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO toppings")).
		WithArgs(sqlmock.AnyArg(), "Cheese", 50.0, "cheese.png", "t1", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	top := &model.Topping{Name: "Cheese", Price: 50, Image: "cheese.png", TenantID: "t1"}
	require.NoError(t, repo.Create(context.Background(), top))
	assert.Len(t, top.ID, 36)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM toppings WHERE id = $1")).
		WithArgs(toppingID).
		WillReturnRows(cheeseRow("t1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM toppings WHERE id = $1")).
		WithArgs(toppingID).
		WillReturnRows(sqlmock.NewRows(toppingColumns))

	top, err := repo.FindByID(context.Background(), toppingID)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "t1", top.TenantID)
	assert.True(t, top.IsPublish)

	top, err = repo.FindByID(context.Background(), toppingID)
	assert.NoError(t, err)
	assert.Nil(t, top)

	top, err = repo.FindByID(context.Background(), "abc")
	assert.NoError(t, err)
	assert.Nil(t, top)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindAllScopesToTenant(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM toppings WHERE tenant_id = $1")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM toppings WHERE tenant_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3")).
		WithArgs("t1", int64(10), int64(10)).
		WillReturnRows(cheeseRow("t1"))

	filters := &dto.ToppingFilters{TenantID: "t1", Page: 2, Limit: 10}
	list, total, err := repo.FindAll(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, list, 1)
	assert.Equal(t, "t1", list[0].TenantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindAllWithQuery(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM toppings WHERE tenant_id = $1 AND name ILIKE $2")).
		WithArgs("t1", `%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.FindAll(context.Background(), &dto.ToppingFilters{TenantID: "t1", Page: 1, Limit: 10, Query: "50%"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	price := 75.0
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE toppings")).
		WithArgs(toppingID, nil, 75.0, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnRows(cheeseRow("t1"))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE toppings")).
		WillReturnRows(sqlmock.NewRows(toppingColumns))

	top, err := repo.Update(context.Background(), &dto.UpdateToppingInput{ID: toppingID, Price: &price})
	require.NoError(t, err)
	require.NotNil(t, top)

	top, err = repo.Update(context.Background(), &dto.UpdateToppingInput{ID: toppingID, Price: &price})
	assert.NoError(t, err)
	assert.Nil(t, top)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM toppings WHERE id = $1 RETURNING *")).
		WithArgs(toppingID).
		WillReturnRows(cheeseRow("t1"))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM toppings WHERE id = $1 RETURNING *")).
		WithArgs(toppingID).
		WillReturnRows(sqlmock.NewRows(toppingColumns))

	top, err := repo.Delete(context.Background(), toppingID)
	require.NoError(t, err)
	assert.NotNil(t, top)

	top, err = repo.Delete(context.Background(), toppingID)
	assert.NoError(t, err)
	assert.Nil(t, top)
	assert.NoError(t, mock.ExpectationsWereMet())
}
