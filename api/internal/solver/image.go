package solver

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"stem-solver/api/internal/util"
)

// DecodeImage turns a base64 payload (optionally data:URI-prefixed) into a
// multimodal attachment. The bytes must decode as a raster image; anything
// else is an ErrInvalidImage carrying the underlying reason.
func DecodeImage(payload string) (*Image, error) {
	raw, hintMIME, err := util.DecodeBase64MaybeDataURL(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return &Image{
		MIME: util.PickMIME("", hintMIME, raw),
		Data: raw,
	}, nil
}
