package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidEncoding indicates the payload was not valid base64.
	ErrInvalidEncoding = errors.New("invalid base64 image payload")

	// ErrUnsupportedFormat indicates the decoded bytes are not an allowed image format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Image is a decoded inline image ready for object storage.
type Image struct {
	Data   []byte
	Format string
}

// formatsByContentType maps sniffed content types to canonical format names.
var formatsByContentType = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
}

// DecodeBase64Image decodes an inline-encoded image and verifies its format is
// one of the allowed set. Payloads may carry a data-URI prefix
// ("data:image/png;base64,...") or be bare base64.
func DecodeBase64Image(encoded string, allowed []string) (Image, error) {
	payload := encoded
	if idx := strings.Index(payload, ";base64,"); idx != -1 {
		payload = payload[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return Image{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
	}

	format, ok := formatsByContentType[http.DetectContentType(data)]
	if !ok {
		return Image{}, ErrUnsupportedFormat
	}

	if !formatAllowed(format, allowed) {
		return Image{}, ErrUnsupportedFormat
	}

	return Image{Data: data, Format: format}, nil
}

// formatAllowed treats "jpg" and "jpeg" as the same on-disk format.
func formatAllowed(format string, allowed []string) bool {
	for _, a := range allowed {
		a = strings.ToLower(a)
		if a == format {
			return true
		}
		if format == "jpeg" && a == "jpg" {
			return true
		}
	}
	return false
}
