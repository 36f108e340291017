package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/repository"
)

// ReportService renders the submission history report as HTML and
// exports it to PDF via headless Chrome
type ReportService struct {
	repo    repository.SubmissionRepositoryInterface
	baseURL string // Base URL for the render endpoint (e.g., "http://localhost:8080")
}

// NewReportService creates a new ReportService
func NewReportService(repo repository.SubmissionRepositoryInterface, baseURL string) *ReportService {
	return &ReportService{repo: repo, baseURL: baseURL}
}

// reportData is the payload handed to the report template
type reportData struct {
	GeneratedAt string
	Summary     *models.SubmissionSummary
	Channels    []models.ChannelStats
}

// RenderHTML renders the submission history report
func (s *ReportService) RenderHTML(ctx context.Context) ([]byte, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report summary: %w", err)
	}
	channels, err := s.repo.ChannelStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build channel stats: %w", err)
	}

	templatePath := filepath.Join("templates", "report.html")
	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"percent": func(rate float64) string { return fmt.Sprintf("%.0f%%", rate*100) },
	}).ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	data := reportData{
		GeneratedAt: time.Now().Format("January 2, 2006 3:04 PM"),
		Summary:     summary,
		Channels:    channels,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.Bytes(), nil
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF drives headless Chrome over the report render endpoint
// and returns the printed PDF bytes
func (s *ReportService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/report/render", s.baseURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report PDF: %w", err)
	}
	return pdfBuf, nil
}
