package labelimage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

// TargetMode selects which deep-link rule the QR code encodes.
type TargetMode string

const (
	// TargetAuto points asset labels at the item's web page and every
	// other item type at its API resource. Snipe-IT renders a browsable
	// page per hardware item, but accessories, consumables, and
	// components have no stable per-item page.
	TargetAuto TargetMode = "auto"
	// TargetPage forces the human web page rule for all item types.
	TargetPage TargetMode = "page"
	// TargetAPI forces the API resource rule for all item types.
	TargetAPI TargetMode = "api"
)

// ParseTargetMode validates a configured QR target rule.
func ParseTargetMode(value string) (TargetMode, error) {
	switch TargetMode(value) {
	case TargetAuto, TargetPage, TargetAPI:
		return TargetMode(value), nil
	case "":
		return TargetAuto, nil
	default:
		return "", fmt.Errorf("qr target %q must be one of: auto, page, api", value)
	}
}

// TargetURL builds the deep link a scanned label resolves to.
func TargetURL(baseURL string, itemType snipeit.ItemType, itemID string, mode TargetMode) string {
	usePage := mode == TargetPage || (mode == TargetAuto && itemType == snipeit.ItemAssets)
	if usePage {
		return fmt.Sprintf("%s/%s/%s", baseURL, itemType.APISegment(), itemID)
	}
	return fmt.Sprintf("%s/api/v1/%s/%s", baseURL, itemType.APISegment(), itemID)
}

// Generate encodes targetURL as a QR code and resizes the raster to exactly
// width x height pixels so it occupies the placeholder's footprint in the
// document layout.
func Generate(targetURL string, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, services.Wrap(services.ErrValidation, "qr", "dimensions", fmt.Sprintf("%dx%d", width, height), nil)
	}

	code, err := qrcode.New(targetURL, qrcode.Medium)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "qr", "encode", targetURL, err)
	}

	// Render at the code's own module scale first, then resample to the
	// placeholder footprint.
	native := code.Image(-4)
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), native, native.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return buf.Bytes(), nil
}

// Replace overwrites the placeholder image file in place with the generated
// raster. After this call only the file's path remains meaningful; its
// original bytes are gone.
func Replace(placeholderPath string, data []byte) error {
	if err := os.WriteFile(placeholderPath, data, 0o644); err != nil {
		return fmt.Errorf("replace placeholder image %s: %w", placeholderPath, err)
	}
	return nil
}
