package transport

import (
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

const (
	defaultContentType = "application/octet-stream"
	genericTextType    = "text/plain"
)

// DetectContentType determines the content type by sniffing the first 512
// bytes of f. When sniffing yields only a generic text or binary type, the
// extension of name decides if it is known, so style sheets and scripts are
// not served as plain text.
func DetectContentType(f fs.File, name string) string {
	sniffed := defaultContentType

	buf := make([]byte, 512)
	n, _ := f.ReadAt(buf, 0)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			if !mt.Is(defaultContentType) && !mt.Is(genericTextType) {
				return mt.String()
			}
			sniffed = mt.String()
		}
	}

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return sniffed
}
