package inventory

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/asset-atlas/pkg/models/domain"
	"github.com/de-tools/asset-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryStore_QueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name, manufacturer").
		WillReturnError(errors.New("io error"))

	_, err = store.GetLicenses(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query licenses")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryStore_InsertUsesAmbientTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "Dana", "dana@example.com", nil, nil, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := duckdb.WithTransaction(context.Background(), tx)

	require.NoError(t, store.AddUser(ctx, domain.User{ID: "u1", Name: "Dana", Email: "dana@example.com"}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
