package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/logging"
)

// PDFExtractor reads page text from PDF files. pdfcpu performs the
// structural validation; ledongthuc/pdf decodes the page text, since
// pdfcpu only exposes raw content streams.
type PDFExtractor struct {
	conf   *model.Configuration
	logger logging.Logger
}

func NewPDFExtractor(logger logging.Logger) *PDFExtractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFExtractor{conf: conf, logger: logger}
}

// ExtractPages returns the plain text of every page in order. Encrypted
// documents fail with common.ErrEncrypted, corrupt ones with
// common.ErrUnreadable. A single page that cannot be decoded is reported
// as an empty string and skipped.
func (e *PDFExtractor) ExtractPages(ctx context.Context, path string) (pages []string, err error) {
	// The underlying parser panics on some malformed inputs.
	defer func() {
		if p := recover(); p != nil {
			pages, err = nil, fmt.Errorf("%w: parser panic: %v", common.ErrUnreadable, p)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %v", common.ErrEncrypted, err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadable, err)
	}
	defer f.Close()

	if err := api.ValidateFile(path, e.conf); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadable, err)
	}

	total := r.NumPage()
	if total == 0 {
		return nil, fmt.Errorf("%w: document has no pages", common.ErrUnreadable)
	}

	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, e.pageText(ctx, r, i))
	}
	return pages, nil
}

// pageText decodes one page, degrading to an empty string on any
// page-local failure.
func (e *PDFExtractor) pageText(ctx context.Context, r *pdf.Reader, num int) (text string) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Warn(ctx, "page text extraction panicked", "page", num, "error", fmt.Sprint(p))
			text = ""
		}
	}()

	page := r.Page(num)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		e.logger.Warn(ctx, "page text extraction failed", "page", num, "error", err)
		return ""
	}
	return text
}
