package server

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"github.com/ironsheep/diamond-reflect/internal/imaging"
)

// Banner is the body of GET /.
const Banner = "Diamond Reflection Effect API"

// Form field names of POST /diamond_reflection_effect.
const (
	fieldImage        = "image"
	fieldDiamondSize  = "diamond_size"
	fieldEdgeSoftness = "edge_softness"
	fieldRotation     = "rotation"
)

func (s *Server) handleHome(c echo.Context) error {
	return c.String(http.StatusOK, Banner)
}

// handleDiamondReflection applies the effect to an uploaded image.
//
// The request is multipart/form-data with the image in the "image" part and
// optional diamond_size, edge_softness and rotation fields. The response is
// the processed image as PNG.
func (s *Server) handleDiamondReflection(c echo.Context) error {
	fh, err := c.FormFile(fieldImage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image file provided"})
	}

	params, err := parseParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	f, err := fh.Open()
	if err != nil {
		return s.internalError(c, fmt.Errorf("failed to open upload: %w", err))
	}
	defer f.Close()

	img, format, err := imaging.Decode(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	info := imaging.Info(img, format)
	if s.cfg.Debug() {
		log.Printf("Processing %s %dx%d (%d channels) with %+v", info.Format, info.Width, info.Height, info.Channels, params)
	}

	out := imaging.DiamondReflection(img, params)

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, out); err != nil {
		return s.internalError(c, err)
	}

	h := c.Response().Header()
	h.Set("X-Image-Width", strconv.Itoa(info.Width))
	h.Set("X-Image-Height", strconv.Itoa(info.Height))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// parseParams reads the effect parameters from the form, falling back to
// the defaults for absent or empty fields.
func parseParams(c echo.Context) (imaging.Params, error) {
	p := imaging.DefaultParams()
	var err error
	if p.DiamondSize, err = formFloat(c, fieldDiamondSize, p.DiamondSize); err != nil {
		return p, err
	}
	if p.EdgeSoftness, err = formFloat(c, fieldEdgeSoftness, p.EdgeSoftness); err != nil {
		return p, err
	}
	if p.Rotation, err = formFloat(c, fieldRotation, p.Rotation); err != nil {
		return p, err
	}
	return p, nil
}

func formFloat(c echo.Context, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: must be a finite number", name)
	}
	return v, nil
}

// internalError logs err, reports it to Sentry when enabled and answers 500.
func (s *Server) internalError(c echo.Context, err error) error {
	log.Printf("Request failed: %v", err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process image"})
}
