package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
	"github.com/offerdesk/offer-platform/internal/pdf"
	"github.com/offerdesk/offer-platform/internal/services"
	"github.com/sirupsen/logrus"
)

// EmployeeHandler handles the unauthenticated employee surface. Employees
// are identified only by knowledge of their employee code; draft and
// missing offers are indistinguishable 404s here by design.
type EmployeeHandler struct {
	offerService     *services.OfferService
	directoryService *services.DirectoryService
	signatureService *services.SignatureService
	termsRepo        *database.TermsRepository
	renderer         *pdf.Renderer
	logger           *logrus.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(
	offerService *services.OfferService,
	directoryService *services.DirectoryService,
	signatureService *services.SignatureService,
	termsRepo *database.TermsRepository,
	renderer *pdf.Renderer,
	logger *logrus.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		offerService:     offerService,
		directoryService: directoryService,
		signatureService: signatureService,
		termsRepo:        termsRepo,
		renderer:         renderer,
		logger:           logger,
	}
}

// ShowLookup renders the employee code lookup form
func (h *EmployeeHandler) ShowLookup(c *gin.Context) {
	c.HTML(http.StatusOK, "employee_lookup.html", gin.H{})
}

// Lookup redirects to the employee's latest published offer
func (h *EmployeeHandler) Lookup(c *gin.Context) {
	employeeCode := c.PostForm("employee_code")

	offer, err := h.offerService.GetPublishedForEmployee(c.Request.Context(), employeeCode)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.HTML(http.StatusNotFound, "employee_lookup.html", gin.H{
				"Error": "No published offer found for this ID",
			})
			return
		}
		h.logger.WithError(err).Error("Offer lookup failed")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/employee/offer/%d", offer.ID))
}

// ViewOffer renders a published offer with its terms
func (h *EmployeeHandler) ViewOffer(c *gin.Context) {
	offer, ok := h.publishedOffer(c)
	if !ok {
		return
	}

	employee := h.employeeForOffer(c, offer)

	terms, err := h.termsRepo.Get(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get terms")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "offer_view.html", gin.H{
		"Offer":     offer,
		"Employee":  employee,
		"OfferHTML": contentHTML(offer.Content),
		"TermsHTML": contentHTML(terms.Content),
	})
}

// ShowSignForm renders the sign form, or the already-signed page when a
// signature exists
func (h *EmployeeHandler) ShowSignForm(c *gin.Context) {
	offer, ok := h.publishedOffer(c)
	if !ok {
		return
	}

	_, err := h.signatureService.GetExisting(c.Request.Context(), offer.EmployeeCode)
	if err == nil {
		c.HTML(http.StatusOK, "success.html", gin.H{
			"EmployeeCode": offer.EmployeeCode,
			"Already":      true,
		})
		return
	}
	if !errors.Is(err, services.ErrNotFound) {
		h.logger.WithError(err).Error("Failed to check existing signature")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	employee := h.employeeForOffer(c, offer)
	c.HTML(http.StatusOK, "sign_form.html", gin.H{
		"Offer":    offer,
		"Employee": employee,
	})
}

// Sign records the employee's signature exactly once
func (h *EmployeeHandler) Sign(c *gin.Context) {
	offer, ok := h.publishedOffer(c)
	if !ok {
		return
	}

	var req models.SignRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "sign_form.html", gin.H{
			"Offer": offer,
			"Error": "Please provide your name, consent, and signature.",
		})
		return
	}

	_, err := h.signatureService.Sign(
		c.Request.Context(),
		offer.EmployeeCode,
		req.SignedName,
		req.ConsentGiven(),
		req.SignatureData,
	)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySigned) {
			c.HTML(http.StatusOK, "success.html", gin.H{
				"EmployeeCode": offer.EmployeeCode,
				"Already":      true,
			})
			return
		}
		if verr, ok := services.AsValidation(err); ok {
			c.HTML(http.StatusBadRequest, "sign_form.html", gin.H{
				"Offer": offer,
				"Error": verr.Message,
			})
			return
		}
		h.logger.WithError(err).Error("Failed to record signature")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"offer_id":      offer.ID,
		"employee_code": offer.EmployeeCode,
	}).Info("Offer signed")

	c.HTML(http.StatusOK, "success.html", gin.H{
		"EmployeeCode": offer.EmployeeCode,
	})
}

// OfferPDF streams the rendered offer document
func (h *EmployeeHandler) OfferPDF(c *gin.Context) {
	offer, ok := h.publishedOffer(c)
	if !ok {
		return
	}

	employee := h.employeeForOffer(c, offer)

	var signature *models.Signature
	sig, err := h.signatureService.GetExisting(c.Request.Context(), offer.EmployeeCode)
	if err == nil {
		signature = sig
	} else if !errors.Is(err, services.ErrNotFound) {
		h.logger.WithError(err).Error("Failed to get signature")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	terms, err := h.termsRepo.Get(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get terms")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	document, err := h.renderer.RenderOffer(offer, employee, terms.Content, signature)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render offer document")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=offer_%d.pdf", offer.ID))
	c.Data(http.StatusOK, "application/pdf", document)
}

// IDCardPDF streams the rendered employee ID card
func (h *EmployeeHandler) IDCardPDF(c *gin.Context) {
	employeeCode := strings.TrimSuffix(c.Param("file"), ".pdf")

	employee, err := h.directoryService.GetByCode(c.Request.Context(), employeeCode)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Employee not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get employee")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	document, err := h.renderer.RenderIDCard(employee)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render id card")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s_id.pdf", employeeCode))
	c.Data(http.StatusOK, "application/pdf", document)
}

// publishedOffer resolves the :id param into a published offer, writing
// the 404 response itself when the offer is missing or still a draft.
func (h *EmployeeHandler) publishedOffer(c *gin.Context) (*models.Offer, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Offer not found")
		return nil, false
	}

	offer, err := h.offerService.GetPublished(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Offer not found")
			return nil, false
		}
		h.logger.WithError(err).Error("Failed to get offer")
		c.String(http.StatusInternalServerError, "Internal server error")
		return nil, false
	}

	return offer, true
}

// employeeForOffer loads the employee record behind an offer. The record
// may legitimately not exist yet; that is not an error.
func (h *EmployeeHandler) employeeForOffer(c *gin.Context, offer *models.Offer) *models.Employee {
	employee, err := h.directoryService.GetByCode(c.Request.Context(), offer.EmployeeCode)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			h.logger.WithError(err).Warn("Failed to load employee for offer")
		}
		return nil
	}
	return employee
}
