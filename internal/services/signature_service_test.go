package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/png;base64,AAAA"

func setupSignatureService(t *testing.T) (*SignatureService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	service := NewSignatureService(
		database.NewSignatureRepository(mockDB),
		database.NewEmployeeRepository(mockDB),
	)

	return service, mock, func() { db.Close() }
}

func emptySignatureRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "employee_code", "signed_name", "signed_at", "signature_image"})
}

func emptyEmployeeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "employee_code", "full_name", "email", "company_id", "details",
		"created_at", "updated_at",
	})
}

func TestSignValidation(t *testing.T) {
	service, mock, cleanup := setupSignatureService(t)
	defer cleanup()

	tests := []struct {
		name       string
		signedName string
		consent    bool
		image      string
	}{
		{"Empty Name", "", true, testImage},
		{"No Consent", "Jane Doe", false, testImage},
		{"No Signature Image", "Jane Doe", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signature, err := service.Sign(context.Background(), "E100", tt.signedName, tt.consent, tt.image)
			assert.Nil(t, signature)

			verr, ok := AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, "Please provide your name, consent, and signature.", verr.Message)
		})
	}

	// No queries at all: validation rejects before the store is touched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignFirstTime(t *testing.T) {
	service, mock, cleanup := setupSignatureService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM signatures`).
		WithArgs("E100").
		WillReturnRows(emptySignatureRows())

	mock.ExpectQuery(`INSERT INTO signatures`).
		WithArgs(sqlmock.AnyArg(), "E100", "Jane Doe", sqlmock.AnyArg(), testImage).
		WillReturnRows(emptySignatureRows().
			AddRow(uuid.New(), "E100", "Jane Doe", time.Now(), testImage))

	mock.ExpectQuery(`SELECT (.+) FROM employees`).
		WithArgs("E100").
		WillReturnRows(emptyEmployeeRows().
			AddRow(uuid.New(), "E100", "Jane Doe", nil, nil, nil, time.Now(), time.Now()))

	signature, err := service.Sign(context.Background(), "E100", "Jane Doe", true, testImage)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", signature.SignedName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignCreatesMissingEmployee(t *testing.T) {
	service, mock, cleanup := setupSignatureService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM signatures`).
		WithArgs("E700").
		WillReturnRows(emptySignatureRows())

	mock.ExpectQuery(`INSERT INTO signatures`).
		WithArgs(sqlmock.AnyArg(), "E700", "Jane Doe", sqlmock.AnyArg(), testImage).
		WillReturnRows(emptySignatureRows().
			AddRow(uuid.New(), "E700", "Jane Doe", time.Now(), testImage))

	// First contact: no employee row yet, signing creates one with the
	// signed name as fallback full name
	mock.ExpectQuery(`SELECT (.+) FROM employees`).
		WithArgs("E700").
		WillReturnRows(emptyEmployeeRows())

	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs(sqlmock.AnyArg(), "E700", "Jane Doe", nil, nil, sqlmock.AnyArg()).
		WillReturnRows(emptyEmployeeRows().
			AddRow(uuid.New(), "E700", "Jane Doe", nil, nil, nil, time.Now(), time.Now()))

	signature, err := service.Sign(context.Background(), "E700", "Jane Doe", true, testImage)
	require.NoError(t, err)
	assert.NotNil(t, signature)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignAlreadySigned(t *testing.T) {
	service, mock, cleanup := setupSignatureService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM signatures`).
		WithArgs("E100").
		WillReturnRows(emptySignatureRows().
			AddRow(uuid.New(), "E100", "Jane Doe", time.Now(), testImage))

	signature, err := service.Sign(context.Background(), "E100", "Someone Else", true, testImage)
	assert.Nil(t, signature)
	assert.ErrorIs(t, err, ErrAlreadySigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignConcurrentLoserGetsAlreadySigned(t *testing.T) {
	service, mock, cleanup := setupSignatureService(t)
	defer cleanup()

	// The pre-check sees nothing, but another request wins the insert
	// race; the unique index turns this attempt into AlreadySigned.
	mock.ExpectQuery(`SELECT (.+) FROM signatures`).
		WithArgs("E100").
		WillReturnRows(emptySignatureRows())

	mock.ExpectQuery(`INSERT INTO signatures`).
		WithArgs(sqlmock.AnyArg(), "E100", "Jane Doe", sqlmock.AnyArg(), testImage).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uniq_signature_employee"})

	signature, err := service.Sign(context.Background(), "E100", "Jane Doe", true, testImage)
	assert.Nil(t, signature)
	assert.ErrorIs(t, err, ErrAlreadySigned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExisting(t *testing.T) {
	service, mock, cleanup := setupSignatureService(t)
	defer cleanup()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM signatures`).
			WithArgs("E100").
			WillReturnRows(emptySignatureRows().
				AddRow(uuid.New(), "E100", "Jane Doe", time.Now(), nil))

		signature, err := service.GetExisting(context.Background(), "E100")
		require.NoError(t, err)
		assert.False(t, signature.SignatureImage.Valid)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM signatures`).
			WithArgs("E999").
			WillReturnRows(emptySignatureRows())

		signature, err := service.GetExisting(context.Background(), "E999")
		assert.Nil(t, signature)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
