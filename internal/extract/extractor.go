// Package extract turns uploaded PDF files into per-page plain text.
package extract

import "context"

// Extractor produces the ordered page texts of a document. A page whose
// text cannot be decoded yields an empty string rather than an error;
// only document-level problems (encryption, corruption) fail the whole
// extraction, with common.ErrEncrypted or common.ErrUnreadable in the
// error chain.
type Extractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}
