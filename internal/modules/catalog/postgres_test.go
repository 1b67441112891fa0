package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

var productCols = []string{"id", "name", "price", "stock", "image", "category", "category_id", "active", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, Repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresRepository(db)
}

func TestPostgresList(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(productCols).
		AddRow("1", "Shampoo Niklaus Pro 1L", "89.90", 150, "img", "Profissional", "cat_prof", true, now, now).
		AddRow("2", "Máscara Revitalizante 500g", "75.00", 80, "img", "Tratamento", "cat_treat", true, now, now)
	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY created_at, id`).WillReturnRows(rows)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("89.90")))
	assert.Equal(t, tier.CategoryTreatment, products[1].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM products WHERE id=\$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsert(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO products .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("3", "Kit Salão Master Premium", sqlmock.AnyArg(), 45, "img", "Kits", "cat_kits", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p := &Product{
		ID: "3", Name: "Kit Salão Master Premium", Price: decimal.RequireFromString("450.00"),
		Stock: 45, Image: "img", Category: "Kits", CategoryID: tier.CategoryKits, Active: true,
	}
	require.NoError(t, repo.Upsert(context.Background(), p))
	assert.True(t, now.Equal(p.UpdatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
