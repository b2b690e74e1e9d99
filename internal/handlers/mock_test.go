package handlers

import (
	"database/sql"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/middleware"
	"github.com/offerdesk/offer-platform/internal/pdf"
	"github.com/offerdesk/offer-platform/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCookieName = "offer_admin_session"

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

// setupTestRouter wires the full route tree against a sqlmock-backed store,
// mirroring the server wiring
func setupTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	adminRepo := database.NewAdminRepository(mockDB)
	sessionRepo := database.NewAdminSessionRepository(mockDB)
	employeeRepo := database.NewEmployeeRepository(mockDB)
	offerRepo := database.NewOfferRepository(mockDB)
	signatureRepo := database.NewSignatureRepository(mockDB)
	termsRepo := database.NewTermsRepository(mockDB)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	authService := services.NewAuthService(adminRepo, sessionRepo, "admin", "admin123", bcrypt.MinCost, 8*time.Hour)
	offerService := services.NewOfferService(offerRepo)
	directoryService := services.NewDirectoryService(employeeRepo)
	signatureService := services.NewSignatureService(signatureRepo, employeeRepo)
	renderer := pdf.NewRenderer()

	adminHandler := NewAdminHandler(
		authService, offerService, directoryService, termsRepo,
		testCookieName, false, 28800, logger,
	)
	employeeHandler := NewEmployeeHandler(
		offerService, directoryService, signatureService, termsRepo, renderer, logger,
	)

	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.html")

	admin := router.Group("/admin")
	{
		admin.GET("/login", adminHandler.ShowLogin)
		admin.POST("/login", adminHandler.Login)
		admin.GET("/logout", adminHandler.Logout)

		protected := admin.Group("")
		protected.Use(middleware.SessionAuth(authService, testCookieName))
		{
			protected.GET("", adminHandler.Dashboard)
			protected.GET("/offer/new", adminHandler.ShowOfferForm)
			protected.POST("/offer/new", adminHandler.CreateOffer)
			protected.POST("/offer/:id/publish", adminHandler.PublishOffer)
			protected.GET("/employees", adminHandler.ListEmployees)
			protected.POST("/employees/upsert", adminHandler.UpsertEmployee)
			protected.POST("/employees/:employee_code/generate-company-id", adminHandler.GenerateCompanyID)
			protected.GET("/terms", adminHandler.ShowTerms)
			protected.POST("/terms", adminHandler.UpdateTerms)
		}
	}

	employee := router.Group("/employee")
	{
		employee.GET("", employeeHandler.ShowLookup)
		employee.POST("/lookup", employeeHandler.Lookup)
		employee.GET("/offer/:id", employeeHandler.ViewOffer)
		employee.GET("/offer/:id/sign", employeeHandler.ShowSignForm)
		employee.POST("/offer/:id/sign", employeeHandler.Sign)
		employee.GET("/offer/:id/pdf", employeeHandler.OfferPDF)
		employee.GET("/employee-id/:file", employeeHandler.IDCardPDF)
	}

	return router, mock, func() { db.Close() }
}
