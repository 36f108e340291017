package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/utils"
)

const (
	filenamePrefix    = "silayan-laundry-"
	filenameExtension = ".png"
	dateLayout        = "January 2, 2006"

	// Fixed draw positions on the tally sheet template
	headerDateX = 580
	headerDateY = 120

	signatureX      = 540
	signatureY      = 950
	signatureWidth  = 220
	signatureDateX  = 540
	signatureDateY  = 1080
)

// CompositorConfig holds the settings needed to render a tally sheet
type CompositorConfig struct {
	TemplatePath  string
	SignaturePath string
	FontSize      float64
	FontFamily    string
}

// ImageCompositor draws the current counts onto a copy of the tally
// sheet template and encodes the result as PNG
// Implements ImageCompositorInterface
type ImageCompositor struct {
	cfg  CompositorConfig
	face font.Face
}

// NewImageCompositor creates an ImageCompositor and prepares the text
// rendering face from the configured family and size
func NewImageCompositor(cfg CompositorConfig) (*ImageCompositor, error) {
	ttf := goregular.TTF
	if cfg.FontFamily == "bold" {
		ttf = gobold.TTF
	}

	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	size := cfg.FontSize
	if size <= 0 {
		size = 24
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return &ImageCompositor{cfg: cfg, face: face}, nil
}

// Ensure ImageCompositor implements ImageCompositorInterface
var _ ImageCompositorInterface = (*ImageCompositor)(nil)

// GenerateImage renders the given counts onto the template and returns
// the encoded PNG bytes plus a timestamped filename.
// Items with a count of 0 (or below, defensively) are skipped entirely.
// A missing signature overlay is tolerated: the warning is logged and
// the rest of the image is still returned as success.
func (c *ImageCompositor) GenerateImage(counts map[string]int, catalog *models.Catalog) ([]byte, string, error) {
	template, err := imaging.Open(c.cfg.TemplatePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load template image: %w", err)
	}

	canvas := imaging.Clone(template)

	now := time.Now()
	dateText := now.Format(dateLayout)
	c.drawText(canvas, dateText, headerDateX, headerDateY)

	for _, item := range catalog.Items() {
		count := counts[item.Name]
		if count <= 0 {
			continue
		}
		c.drawText(canvas, strconv.Itoa(count), item.X, item.Y)
	}

	signature, err := imaging.Open(c.cfg.SignaturePath)
	if err != nil {
		log.Printf("⚠️  Warning: failed to load signature image, continuing without it: %v", err)
	} else {
		scaled := imaging.Resize(signature, signatureWidth, 0, imaging.Lanczos)
		canvas = imaging.Overlay(canvas, scaled, image.Pt(signatureX, signatureY), 1.0)
	}

	c.drawText(canvas, dateText, signatureDateX, signatureDateY)

	var buf bytes.Buffer
	// PNG keeps the output lossless
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}

	filename := utils.TimestampedFilename(filenamePrefix, filenameExtension, now)
	log.Printf("✓ Tally image generated: %s (%d bytes)", filename, buf.Len())
	return buf.Bytes(), filename, nil
}

// ValidateConfig checks the compositor settings and returns
// human-readable errors so callers can pre-flight without rendering
func (c *ImageCompositor) ValidateConfig() []string {
	var errs []string
	if c.cfg.TemplatePath == "" {
		errs = append(errs, "template path must not be empty")
	}
	if c.cfg.SignaturePath == "" {
		errs = append(errs, "signature path must not be empty")
	}
	if c.cfg.FontSize <= 0 {
		errs = append(errs, "font size must be positive")
	}
	if c.cfg.FontFamily == "" {
		errs = append(errs, "font family must not be empty")
	}
	return errs
}

func (c *ImageCompositor) drawText(dst *image.NRGBA, text string, x, y int) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 25, G: 25, B: 25, A: 255}),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
