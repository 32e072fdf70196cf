package invers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxImageSize is the largest profile image payload accepted, in bytes.
const MaxImageSize = 500000

// DefaultProfileName is the display name of a fresh profile.
const DefaultProfileName = "Bit ◦ Gold"

// ErrImageTooLarge is returned when a profile image exceeds MaxImageSize.
var ErrImageTooLarge = errors.New("image is too large")

// Profile is the user's display identity.
type Profile struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"` // data URL
}

// DefaultProfile returns the profile of a fresh install.
func DefaultProfile() Profile { return Profile{Name: DefaultProfileName} }

// EncodeImage validates an image payload and returns it as a data URL.
// Oversized or non image payloads are rejected.
func EncodeImage(payload []byte) (string, error) {
	if len(payload) > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes, want at most %d", ErrImageTooLarge, len(payload), MaxImageSize)
	}
	mime := http.DetectContentType(payload)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("unsupported image type %q", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeImage returns the mime type and payload of a data URL.
func DecodeImage(dataURL string) (mime string, payload []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	header, data, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data URL")
	}
	mime, ok = strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, errors.New("data URL is not base64 encoded")
	}
	payload, err = base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL: %w", err)
	}
	return mime, payload, nil
}
