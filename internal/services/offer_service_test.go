package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOfferService(t *testing.T) (*OfferService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	service := NewOfferService(database.NewOfferRepository(&mockDatabase{db: db}))
	return service, mock, func() { db.Close() }
}

func emptyOfferRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "employee_code", "content", "status", "published_at", "created_at"})
}

func TestCreateDraft(t *testing.T) {
	service, mock, cleanup := setupOfferService(t)
	defer cleanup()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO offers`).
			WithArgs("E100", "Welcome aboard", models.OfferStatusDraft, sqlmock.AnyArg()).
			WillReturnRows(emptyOfferRows().
				AddRow(int64(1), "E100", "Welcome aboard", "draft", nil, time.Now()))

		offer, err := service.CreateDraft(context.Background(), "E100", "Welcome aboard")
		require.NoError(t, err)
		assert.False(t, offer.IsPublished())
	})

	t.Run("Missing Fields", func(t *testing.T) {
		offer, err := service.CreateDraft(context.Background(), "", "")
		assert.Nil(t, offer)

		_, ok := AsValidation(err)
		assert.True(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublish(t *testing.T) {
	service, mock, cleanup := setupOfferService(t)
	defer cleanup()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE offers`).
			WithArgs(models.OfferStatusPublished, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, service.Publish(context.Background(), 1))
	})

	t.Run("Second Publish Succeeds Again", func(t *testing.T) {
		mock.ExpectExec(`UPDATE offers`).
			WithArgs(models.OfferStatusPublished, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, service.Publish(context.Background(), 1))
	})

	t.Run("Missing Offer", func(t *testing.T) {
		mock.ExpectExec(`UPDATE offers`).
			WithArgs(models.OfferStatusPublished, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := service.Publish(context.Background(), 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublished(t *testing.T) {
	service, mock, cleanup := setupOfferService(t)
	defer cleanup()

	t.Run("Published", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM offers`).
			WithArgs(int64(1)).
			WillReturnRows(emptyOfferRows().
				AddRow(int64(1), "E100", "content", "published", time.Now(), time.Now()))

		offer, err := service.GetPublished(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, offer.IsPublished())
	})

	t.Run("Draft Looks Like Missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM offers`).
			WithArgs(int64(2)).
			WillReturnRows(emptyOfferRows().
				AddRow(int64(2), "E100", "content", "draft", nil, time.Now()))

		offer, err := service.GetPublished(context.Background(), 2)
		assert.Nil(t, offer)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM offers`).
			WithArgs(int64(3)).
			WillReturnRows(emptyOfferRows())

		offer, err := service.GetPublished(context.Background(), 3)
		assert.Nil(t, offer)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedForEmployee(t *testing.T) {
	service, mock, cleanup := setupOfferService(t)
	defer cleanup()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM offers`).
			WithArgs("E100", models.OfferStatusPublished).
			WillReturnRows(emptyOfferRows().
				AddRow(int64(5), "E100", "content", "published", time.Now(), time.Now()))

		offer, err := service.GetPublishedForEmployee(context.Background(), "E100")
		require.NoError(t, err)
		assert.Equal(t, int64(5), offer.ID)
	})

	t.Run("Nothing Published", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM offers`).
			WithArgs("E200", models.OfferStatusPublished).
			WillReturnRows(emptyOfferRows())

		offer, err := service.GetPublishedForEmployee(context.Background(), "E200")
		assert.Nil(t, offer)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
