// Package pdf assembles offer letters and employee ID cards as PDF
// documents. Rendering is deterministic: identical input rows produce
// identical output bytes.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/offerdesk/offer-platform/internal/models"
)

const (
	// signatureImageWidth is the fixed display width for embedded
	// signature images, in points.
	signatureImageWidth = 300

	idCardWidth  = 300
	idCardHeight = 180
)

// Renderer builds PDF documents from stored records
type Renderer struct {
	// creationDate is pinned so two renders of the same rows are
	// byte-for-byte identical.
	creationDate time.Time
}

// NewRenderer creates a new document renderer
func NewRenderer() *Renderer {
	return &Renderer{
		creationDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// RenderOffer produces the offer letter document. Page 1 carries the offer
// itself; a terms page follows only when terms content exists; a signature
// page follows only when the employee has signed. employee and signature
// may be nil.
func (r *Renderer) RenderOffer(offer *models.Offer, employee *models.Employee, terms string, signature *models.Signature) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCreationDate(r.creationDate)
	doc.SetMargins(50, 50, 50)
	doc.SetAutoPageBreak(true, 50)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "", 20)
	doc.CellFormat(0, 24, "Offer Letter", "", 1, "C", false, 0, "")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 12)
	if employee != nil && employee.FullName.Valid {
		doc.CellFormat(0, 14, tr(fmt.Sprintf("Employee: %s (%s)", employee.FullName.String, offer.EmployeeCode)), "", 1, "L", false, 0, "")
	} else {
		doc.CellFormat(0, 14, tr(fmt.Sprintf("Employee ID: %s", offer.EmployeeCode)), "", 1, "L", false, 0, "")
	}
	doc.Ln(14)

	doc.CellFormat(0, 14, "Content:", "", 1, "L", false, 0, "")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 14, tr(offer.Content), "", "L", false)

	if terms != "" {
		doc.AddPage()
		doc.SetFont("Helvetica", "U", 14)
		doc.CellFormat(0, 18, "Terms & Conditions", "", 1, "L", false, 0, "")
		doc.Ln(14)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 13, tr(terms), "", "L", false)
	}

	if signature != nil {
		doc.AddPage()
		doc.SetFont("Helvetica", "U", 14)
		doc.CellFormat(0, 18, "Signature", "", 1, "L", false, 0, "")
		doc.Ln(14)
		doc.SetFont("Helvetica", "", 12)
		doc.CellFormat(0, 14, tr(fmt.Sprintf("Signed by: %s", signature.SignedName)), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 13, fmt.Sprintf("Signed at: %s", signature.SignedAt.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")

		if signature.SignatureImage.Valid {
			embedSignatureImage(doc, signature.SignatureImage.String)
		}
	}

	return output(doc)
}

// RenderIDCard produces the single-page employee ID card
func (r *Renderer) RenderIDCard(employee *models.Employee) ([]byte, error) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: idCardWidth, Ht: idCardHeight},
	})
	doc.SetCreationDate(r.creationDate)
	doc.SetMargins(16, 16, 16)
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.RoundedRect(8, 8, idCardWidth-16, idCardHeight-32, 12, "1234", "D")

	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 18, "Company ID Card", "", 1, "C", false, 0, "")
	doc.Ln(10)

	fullName := "-"
	if employee.FullName.Valid {
		fullName = employee.FullName.String
	}
	companyID := "Pending"
	if employee.CompanyID.Valid {
		companyID = employee.CompanyID.String
	}

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 16, tr(fmt.Sprintf("Employee: %s", fullName)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 16, tr(fmt.Sprintf("Employee ID: %s", employee.EmployeeCode)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 16, tr(fmt.Sprintf("Company ID: %s", companyID)), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 11, "This card is system-generated.", "", 1, "C", false, 0, "")

	return output(doc)
}

// embedSignatureImage places the decoded signature image at a fixed width.
// Anything malformed is skipped: a bad image never fails the document.
func embedSignatureImage(doc *gofpdf.Fpdf, dataURI string) {
	data, imageType, ok := decodeImageDataURI(dataURI)
	if !ok {
		return
	}

	doc.Ln(10)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader("signature", opts, bytes.NewReader(data))
	if doc.Err() {
		doc.ClearError()
		return
	}
	doc.ImageOptions("signature", 50, doc.GetY(), signatureImageWidth, 0, true, opts, 0, "")
}

func output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
