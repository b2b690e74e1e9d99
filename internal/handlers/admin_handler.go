package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
	"github.com/offerdesk/offer-platform/internal/services"
	"github.com/sirupsen/logrus"
)

// AdminHandler handles the session-gated admin surface
type AdminHandler struct {
	authService      *services.AuthService
	offerService     *services.OfferService
	directoryService *services.DirectoryService
	termsRepo        *database.TermsRepository
	cookieName       string
	cookieSecure     bool
	sessionMaxAge    int
	logger           *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authService *services.AuthService,
	offerService *services.OfferService,
	directoryService *services.DirectoryService,
	termsRepo *database.TermsRepository,
	cookieName string,
	cookieSecure bool,
	sessionMaxAge int,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		authService:      authService,
		offerService:     offerService,
		directoryService: directoryService,
		termsRepo:        termsRepo,
		cookieName:       cookieName,
		cookieSecure:     cookieSecure,
		sessionMaxAge:    sessionMaxAge,
		logger:           logger,
	}
}

// ShowLogin renders the login form, bootstrapping the default admin
// account on first contact
func (h *AdminHandler) ShowLogin(c *gin.Context) {
	if err := h.authService.EnsureDefaultAdmin(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to bootstrap default admin")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// Login authenticates the admin and opens a session
func (h *AdminHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	session, err := h.authService.Login(
		c.Request.Context(),
		username,
		password,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.WithField("username", username).Warn("Admin login failed")
			c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
				"Error": "Invalid credentials",
			})
			return
		}
		h.logger.WithError(err).Error("Admin login error")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"admin_id": session.AdminID,
		"username": session.Username,
	}).Info("Admin login successful")

	c.SetCookie(h.cookieName, session.Token.String(), h.sessionMaxAge, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, "/admin")
}

// Logout ends the session and clears the cookie
func (h *AdminHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if token, err := uuid.Parse(cookie); err == nil {
			if err := h.authService.Logout(c.Request.Context(), token); err != nil {
				h.logger.WithError(err).Warn("Failed to delete session on logout")
			}
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

// Dashboard lists all offers, newest first
func (h *AdminHandler) Dashboard(c *gin.Context) {
	offers, err := h.offerService.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list offers")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Offers": offers,
	})
}

// ShowOfferForm renders the draft offer form
func (h *AdminHandler) ShowOfferForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_offer_form.html", gin.H{})
}

// CreateOffer inserts a new draft offer
func (h *AdminHandler) CreateOffer(c *gin.Context) {
	var req models.CreateOfferRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "admin_offer_form.html", gin.H{
			"Error": "Employee code and content are required.",
		})
		return
	}

	offer, err := h.offerService.CreateDraft(c.Request.Context(), req.EmployeeCode, req.Content)
	if err != nil {
		if verr, ok := services.AsValidation(err); ok {
			c.HTML(http.StatusBadRequest, "admin_offer_form.html", gin.H{
				"Error": verr.Message,
			})
			return
		}
		h.logger.WithError(err).Error("Failed to create draft offer")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"offer_id":      offer.ID,
		"employee_code": offer.EmployeeCode,
	}).Info("Draft offer created")

	c.Redirect(http.StatusFound, "/admin")
}

// PublishOffer transitions an offer to published
func (h *AdminHandler) PublishOffer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Offer not found")
		return
	}

	if err := h.offerService.Publish(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Offer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to publish offer")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.WithField("offer_id", id).Info("Offer published")
	c.Redirect(http.StatusFound, "/admin")
}

// ListEmployees renders the employee directory page
func (h *AdminHandler) ListEmployees(c *gin.Context) {
	employees, err := h.directoryService.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list employees")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "admin_employees.html", gin.H{
		"Employees": employees,
	})
}

// UpsertEmployee creates or overwrites an employee profile
func (h *AdminHandler) UpsertEmployee(c *gin.Context) {
	var req models.UpsertEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "admin_employees.html", gin.H{
			"Error": "Employee code is required.",
		})
		return
	}

	_, err := h.directoryService.Upsert(c.Request.Context(), req.EmployeeCode, req.FullName, req.Email, req.Details)
	if err != nil {
		if verr, ok := services.AsValidation(err); ok {
			c.HTML(http.StatusBadRequest, "admin_employees.html", gin.H{
				"Error": verr.Message,
			})
			return
		}
		h.logger.WithError(err).Error("Failed to upsert employee")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/admin/employees")
}

// GenerateCompanyID assigns a fresh company id to an employee
func (h *AdminHandler) GenerateCompanyID(c *gin.Context) {
	employeeCode := c.Param("employee_code")

	companyID, err := h.directoryService.GenerateCompanyID(c.Request.Context(), employeeCode)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Employee not found")
			return
		}
		h.logger.WithError(err).Error("Failed to generate company id")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"employee_code": employeeCode,
		"company_id":    companyID,
	}).Info("Company id generated")

	c.Redirect(http.StatusFound, "/admin/employees")
}

// ShowTerms renders the terms editing page
func (h *AdminHandler) ShowTerms(c *gin.Context) {
	terms, err := h.termsRepo.Get(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get terms")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "admin_terms.html", gin.H{
		"Terms": terms.Content,
	})
}

// UpdateTerms overwrites the singleton terms content
func (h *AdminHandler) UpdateTerms(c *gin.Context) {
	content := c.PostForm("content")

	if err := h.termsRepo.Update(c.Request.Context(), content); err != nil {
		h.logger.WithError(err).Error("Failed to update terms")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/admin/terms")
}
