package filestorage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sharecrm/share/internal/pkg/apperrors"
)

// DocumentTypes are accepted for medical certificates and PAQ documents
var DocumentTypes = []string{"application/pdf", "image/png", "image/jpeg"}

const sniffLen = 3072

// DetectAndValidate sniffs the content type of r and rejects anything not in allowed.
// The returned reader yields the full content, including the sniffed header.
func DetectAndValidate(r io.Reader, allowed []string) (string, io.Reader, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	header = header[:n]

	mt := mimetype.Detect(header)
	for _, a := range allowed {
		if mt.Is(a) {
			return a, io.MultiReader(bytes.NewReader(header), r), nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFileType, mt.String())
}
