package middleware

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockDatabase adapts a sqlmock *sql.DB to the database.DB interface
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func setupSessionRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	authService := services.NewAuthService(
		database.NewAdminRepository(mockDB),
		database.NewAdminSessionRepository(mockDB),
		"admin",
		"admin123",
		bcrypt.MinCost,
		8*time.Hour,
	)

	router := gin.New()
	protected := router.Group("/admin")
	protected.Use(SessionAuth(authService, "offer_admin_session"))
	protected.GET("/whoami", func(c *gin.Context) {
		session, ok := GetAdminSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, session.Username)
	})

	return router, mock, func() { db.Close() }
}

func TestSessionAuth(t *testing.T) {
	router, mock, cleanup := setupSessionRouter(t)
	defer cleanup()

	t.Run("Valid Session Passes Through", func(t *testing.T) {
		token := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM admin_sessions`).
			WithArgs(token).
			WillReturnRows(sqlmock.NewRows([]string{
				"token", "admin_id", "username", "ip_address", "device_os", "browser",
				"created_at", "expires_at",
			}).AddRow(token, uuid.New(), "admin", nil, nil, nil, time.Now(), time.Now().Add(time.Hour)))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "offer_admin_session", Value: token.String()})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", w.Body.String())
	})

	t.Run("Missing Cookie Redirects", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	})

	t.Run("Unknown Token Redirects", func(t *testing.T) {
		token := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM admin_sessions`).
			WithArgs(token).
			WillReturnRows(sqlmock.NewRows([]string{
				"token", "admin_id", "username", "ip_address", "device_os", "browser",
				"created_at", "expires_at",
			}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "offer_admin_session", Value: token.String()})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
