package pdf

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	// Decoders for the pre-embed sanity check
	_ "image/jpeg"
	_ "image/png"
)

// decodeImageDataURI turns a "data:image/...;base64," URI into raw image
// bytes plus the gofpdf image type. It reports ok=false for anything that
// is not a well-formed PNG or JPEG data URI; callers skip those.
func decodeImageDataURI(dataURI string) ([]byte, string, bool) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return nil, "", false
	}

	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 {
		return nil, "", false
	}

	var imageType string
	switch {
	case strings.Contains(parts[0], "image/png"):
		imageType = "PNG"
	case strings.Contains(parts[0], "image/jpeg"), strings.Contains(parts[0], "image/jpg"):
		imageType = "JPG"
	default:
		return nil, "", false
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", false
	}

	// Confirm the bytes really decode before handing them to the PDF
	// writer, whose error state would otherwise poison the document.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, "", false
	}

	return data, imageType, true
}
