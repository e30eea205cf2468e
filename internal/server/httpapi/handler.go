// Package httpapi exposes the scan service over HTTP. Handlers stay
// thin: parse the request, call into processing or the repositories,
// translate errors to status codes.
package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkrasnov/pdfscan/internal/common"
	"github.com/dkrasnov/pdfscan/internal/logging"
	"github.com/dkrasnov/pdfscan/internal/models"
	"github.com/dkrasnov/pdfscan/internal/processing"
	"github.com/dkrasnov/pdfscan/internal/repositories/metrics"
	"github.com/dkrasnov/pdfscan/internal/repositories/paging"
	"github.com/dkrasnov/pdfscan/internal/repositories/repomanager"
	"github.com/dkrasnov/pdfscan/internal/validation"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

type Handler struct {
	repos         repomanager.RepositoryManager
	processor     *processing.Processor
	logger        logging.Logger
	maxUploadSize int64
}

func NewHandler(repos repomanager.RepositoryManager, processor *processing.Processor, logger logging.Logger, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = validation.MaxFileSize
	}
	return &Handler{
		repos:         repos,
		processor:     processor,
		logger:        logger.With("component", "httpapi"),
		maxUploadSize: maxUploadSize,
	}
}

// Register attaches all routes to the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/upload", h.Upload)
	r.GET("/documents", h.ListDocuments)
	r.GET("/documents/:id", h.GetDocument)
	r.GET("/documents/:id/findings", h.DocumentFindings)
	r.GET("/findings", h.ListFindings)
	r.GET("/metrics", h.ListMetrics)
	r.GET("/metrics/average", h.AverageMetric)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
	})
}

// Upload accepts a multipart PDF, validates it and runs the scan
// pipeline synchronously. Oversized files get 413, other validation
// failures 400.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required", "code": "MISSING_FILE"})
		return
	}
	if fh.Size > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit", "code": validation.CodeFileTooLarge})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file could not be read", "code": "MISSING_FILE"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file could not be read", "code": "MISSING_FILE"})
		return
	}

	if err := validation.CheckUpload(fh.Filename, content, h.maxUploadSize); err != nil {
		var verr *validation.Error
		code := "VALIDATION_ERROR"
		if errors.As(err, &verr) {
			code = verr.Code
		}
		status := http.StatusBadRequest
		if code == validation.CodeFileTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	res, err := h.processor.ProcessUpload(c.Request.Context(), fh.Filename, content)
	if err != nil {
		h.logger.Error(c.Request.Context(), "upload processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process document", "code": "PROCESSING_ERROR"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	limit, offset := pagingParams(c)

	docs, err := h.repos.Documents().List(c.Request.Context(), limit, offset)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"count":     len(docs),
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) GetDocument(c *gin.Context) {
	doc, err := h.repos.Documents().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found", "code": "NOT_FOUND"})
			return
		}
		h.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DocumentFindings returns all findings for one document ordered by
// confidence. The document must exist; a clean document yields an
// empty list.
func (h *Handler) DocumentFindings(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.repos.Documents().Get(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found", "code": "NOT_FOUND"})
			return
		}
		h.storageError(c, err)
		return
	}

	found, err := h.repos.Findings().GetByDocument(ctx, id)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": id,
		"findings":    found,
		"count":       len(found),
	})
}

func (h *Handler) ListFindings(c *gin.Context) {
	limit, offset := pagingParams(c)
	typeFilter := models.FindingType(c.Query("type"))

	page, err := h.repos.Findings().ListAll(c.Request.Context(), limit, offset, typeFilter)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"findings": page.Items,
		"count":    page.Returned(),
		"total":    page.Total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})
}

func (h *Handler) ListMetrics(c *gin.Context) {
	limit, offset := pagingParams(c)
	filter, err := metricFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_FILTER"})
		return
	}

	got, err := h.repos.Metrics().Query(c.Request.Context(), filter, limit, offset)
	if err != nil {
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": got,
		"count":   len(got),
		"limit":   limit,
		"offset":  offset,
	})
}

// AverageMetric reports the mean duration over the filtered samples.
// An empty selection is 404, not zero.
func (h *Handler) AverageMetric(c *gin.Context) {
	filter, err := metricFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_FILTER"})
		return
	}

	avg, err := h.repos.Metrics().AverageDuration(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, common.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no metrics match the filter", "code": "NO_DATA"})
			return
		}
		h.storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"operation":           filter.Operation,
		"average_duration_ms": avg,
	})
}

func (h *Handler) storageError(c *gin.Context, err error) {
	h.logger.Error(c.Request.Context(), "storage error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage backend error", "code": "STORAGE_ERROR"})
}

// pagingParams reads limit and offset query params, falling back to the
// repository defaults on absent or malformed values.
func pagingParams(c *gin.Context) (int, int) {
	limit := paging.DefaultLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return paging.Clamp(limit, offset)
}

func metricFilter(c *gin.Context) (metrics.Filter, error) {
	f := metrics.Filter{
		Operation:  c.Query("operation"),
		DocumentID: c.Query("document_id"),
	}
	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("start must be an RFC 3339 timestamp")
		}
		f.Start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, errors.New("end must be an RFC 3339 timestamp")
		}
		f.End = t
	}
	return f, nil
}
