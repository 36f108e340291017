package service

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boazcstrike/silayan-laundry/models"
)

// writeTestImage writes a solid-color PNG to use as a template or
// signature fixture
func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func newTestCompositor(t *testing.T, templatePath, signaturePath string) *ImageCompositor {
	t.Helper()
	compositor, err := NewImageCompositor(CompositorConfig{
		TemplatePath:  templatePath,
		SignaturePath: signaturePath,
		FontSize:      24,
		FontFamily:    "regular",
	})
	require.NoError(t, err)
	return compositor
}

func TestImageCompositor_GenerateImage(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.png")
	signaturePath := filepath.Join(dir, "signature.png")
	writeTestImage(t, templatePath, 800, 1200)
	writeTestImage(t, signaturePath, 300, 120)

	compositor := newTestCompositor(t, templatePath, signaturePath)
	catalog := models.DefaultCatalog()

	counts := map[string]int{"T-Shirt": 3, "Towel": 12}
	data, filename, err := compositor.GenerateImage(counts, catalog)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// The output decodes as a PNG with the template's dimensions
	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 800, decoded.Bounds().Dx())
	assert.Equal(t, 1200, decoded.Bounds().Dy())

	assert.Regexp(t, regexp.MustCompile(`^silayan-laundry-\d{14}\.png$`), filename)
	_, err = time.ParseInLocation("20060102150405", filename[16:30], time.Local)
	assert.NoError(t, err)
}

func TestImageCompositor_AllZeroCountsStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.png")
	signaturePath := filepath.Join(dir, "signature.png")
	writeTestImage(t, templatePath, 800, 1200)
	writeTestImage(t, signaturePath, 300, 120)

	compositor := newTestCompositor(t, templatePath, signaturePath)
	data, _, err := compositor.GenerateImage(map[string]int{}, models.DefaultCatalog())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestImageCompositor_NegativeCountsAreSkipped(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.png")
	writeTestImage(t, templatePath, 800, 1200)

	compositor := newTestCompositor(t, templatePath, filepath.Join(dir, "missing.png"))
	counts := map[string]int{"T-Shirt": -4, "Towel": 0}
	data, _, err := compositor.GenerateImage(counts, models.DefaultCatalog())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestImageCompositor_MissingSignatureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.png")
	writeTestImage(t, templatePath, 800, 1200)

	compositor := newTestCompositor(t, templatePath, filepath.Join(dir, "nope.png"))
	data, filename, err := compositor.GenerateImage(map[string]int{"Towel": 1}, models.DefaultCatalog())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.NotEmpty(t, filename)
}

func TestImageCompositor_MissingTemplateFails(t *testing.T) {
	dir := t.TempDir()
	compositor := newTestCompositor(t, filepath.Join(dir, "absent.png"), filepath.Join(dir, "absent2.png"))

	_, _, err := compositor.GenerateImage(map[string]int{}, models.DefaultCatalog())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load template image")
}

func TestImageCompositor_ValidateConfig(t *testing.T) {
	compositor := &ImageCompositor{cfg: CompositorConfig{}}
	errs := compositor.ValidateConfig()
	assert.Contains(t, errs, "template path must not be empty")
	assert.Contains(t, errs, "signature path must not be empty")
	assert.Contains(t, errs, "font size must be positive")
	assert.Contains(t, errs, "font family must not be empty")

	compositor = &ImageCompositor{cfg: CompositorConfig{
		TemplatePath:  "a.png",
		SignaturePath: "b.png",
		FontSize:      24,
		FontFamily:    "regular",
	}}
	assert.Empty(t, compositor.ValidateConfig())
}
