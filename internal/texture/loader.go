package texture

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/png" // Register PNG decoder
)

// LoadPNG decodes the image at path.
func LoadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

// DecodePNG decodes PNG bytes, e.g. a texture pack entry.
func DecodePNG(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture: %w", err)
	}
	return img, nil
}
