package facial

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	// Register decoders for the formats the web capture and upload paths use.
	_ "image/jpeg"
	_ "image/png"

	"github.com/campuskit/rollcall/internal/domain"
)

// DecodeDataURI decodes a data-URI-style capture payload
// ("<mime-prefix>,<base64>"): everything before the first comma is discarded,
// the remainder is base64-decoded and decoded as an image. Any failure along
// the way is ErrInvalidImage.
func DecodeDataURI(data string) (image.Image, error) {
	_, payload, found := strings.Cut(data, ",")
	if !found {
		return nil, domain.ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	return img, nil
}

// DecodeImage decodes raw uploaded image bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	return img, nil
}
