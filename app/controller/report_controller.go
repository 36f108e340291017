package controller

import (
	"fmt"
	"net/http"

	"github.com/boazcstrike/silayan-laundry/service"
)

// ReportController serves the submission history report
type ReportController struct {
	report *service.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(report *service.ReportService) *ReportController {
	return &ReportController{report: report}
}

// Render handles GET /admin/report/render
// Returns the HTML report (also the page chromedp prints to PDF)
func (c *ReportController) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html, err := c.report.RenderHTML(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render report: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// PDF handles GET /admin/report/pdf
func (c *ReportController) PDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pdf, err := c.report.GeneratePDF(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="submission-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
