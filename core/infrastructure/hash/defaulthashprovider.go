// Package hash provides perceptual hashing functionality for images.
package hash

import (
	"fmt"
	stdimage "image"

	"github.com/corona10/goimagehash"
)

// DefaultHashProvider implements the HashProvider interface using the goimagehash library.
type DefaultHashProvider struct{}

// NewDefaultHashProvider creates a new instance of DefaultHashProvider.
func NewDefaultHashProvider() HashProvider {
	return &DefaultHashProvider{}
}

// PerceptionHash computes the perception hash of an image.
// The perception hash uses DCT (Discrete Cosine Transform) and is more robust to image modifications.
func (h *DefaultHashProvider) PerceptionHash(img stdimage.Image) (*goimagehash.ImageHash, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to compute perception hash: %w", err)
	}
	return hash, nil
}
