package markup

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// ErrNotImage is returned when the data given to ImageTag is not an image.
var ErrNotImage = errors.New("not an image")

// ImageFilter lists the extensions offered when selecting an image.
var ImageFilter = []string{".jpg", ".jpeg", ".gif", ".png", ".bmp"}

// ImageTag returns an img element embedding data as a base64 data URI. The
// name is used as the alternative text.
func ImageTag(name string, data []byte) (string, error) {
	if !filetype.IsImage(data) {
		return "", fmt.Errorf("%s: %w", name, ErrNotImage)
	}
	kind, err := filetype.Image(data)
	if err != nil {
		return "", fmt.Errorf("detecting type of %s: %w", name, err)
	}

	return fmt.Sprintf(`<img src="data:%s;base64,%s" alt="%s" />`,
		kind.MIME.Value, base64.StdEncoding.EncodeToString(data), html.EscapeString(name)), nil
}

// ImageTagFromFile reads the image at path and returns its img element.
func ImageTagFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	return ImageTag(filepath.Base(path), data)
}
