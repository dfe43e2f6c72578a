package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/document-service/internal/api/dto"
	"github.com/unifiedui/document-service/internal/api/middleware"
	domainerrors "github.com/unifiedui/document-service/internal/domain/errors"
	"github.com/unifiedui/document-service/internal/domain/models"
	"github.com/unifiedui/document-service/internal/services/documents"
)

// DocumentReader is the subset of the document accessor used by the HTTP layer.
type DocumentReader interface {
	Count(ctx context.Context) (int64, error)
	First(ctx context.Context) (*models.Document, error)
	Last(ctx context.Context) (*models.Document, error)
	Get(ctx context.Context, id string, opts ...documents.CallOption) (*models.Document, error)
	GetStrict(ctx context.Context, id string, opts ...documents.CallOption) (*models.Document, error)
	GetBulk(ctx context.Context, ids []string, opts ...documents.CallOption) ([]*models.Document, error)
	GetBulkStrict(ctx context.Context, ids []string, opts ...documents.CallOption) ([]*models.Document, error)
}

// DocumentsHandler handles document lookup endpoints.
type DocumentsHandler struct {
	reader DocumentReader
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(reader DocumentReader) *DocumentsHandler {
	return &DocumentsHandler{
		reader: reader,
	}
}

// GetDocument handles GET /documents/*id. The id may contain slashes, as
// CouchDB design document ids do.
// @Summary Get document
// @Description Loads a single document by id. The id may contain slashes (e.g. _design/name). With tolerant=true a missing document yields 204 instead of 404.
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Param tolerant query bool false "Return 204 instead of 404 when the document does not exist"
// @Success 200 {object} dto.DocumentResponse
// @Success 204 "Document not found (tolerant mode)"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentsHandler) GetDocument(c *gin.Context) {
	ctx := c.Request.Context()
	id := strings.TrimPrefix(c.Param("id"), "/")

	tolerant, err := parseBoolQuery(c, "tolerant")
	if err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid tolerant parameter", err.Error()))
		return
	}

	var doc *models.Document
	if tolerant {
		doc, err = h.reader.Get(ctx, id)
	} else {
		doc, err = h.reader.GetStrict(ctx, id)
	}
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if doc == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.NewDocumentResponse(doc))
}

// GetDocuments handles POST /documents/bulk.
// @Summary Get documents in bulk
// @Description Loads several documents by id. Missing ids are skipped; strict mode fails when none resolve.
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body dto.BulkGetRequest true "Document ids"
// @Success 200 {object} dto.BulkGetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /documents/bulk [post]
func (h *DocumentsHandler) GetDocuments(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BulkGetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	var (
		docs []*models.Document
		err  error
	)
	if req.Strict {
		docs, err = h.reader.GetBulkStrict(ctx, req.IDs)
	} else {
		docs, err = h.reader.GetBulk(ctx, req.IDs)
	}
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBulkGetResponse(docs))
}

// CountAll handles GET /views/all/count.
// @Summary Count documents
// @Description Returns the number of documents in the all-documents view
// @Tags Views
// @Produce json
// @Success 200 {object} dto.CountResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /views/all/count [get]
func (h *DocumentsHandler) CountAll(c *gin.Context) {
	count, err := h.reader.Count(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// FirstOfAll handles GET /views/all/first.
// @Summary First document
// @Description Returns the first document of the all-documents view
// @Tags Views
// @Produce json
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} dto.ErrorResponse "View is empty"
// @Failure 503 {object} dto.ErrorResponse
// @Router /views/all/first [get]
func (h *DocumentsHandler) FirstOfAll(c *gin.Context) {
	doc, err := h.reader.First(c.Request.Context())
	h.respondViewEdge(c, doc, err)
}

// LastOfAll handles GET /views/all/last.
// @Summary Last document
// @Description Returns the last document of the all-documents view
// @Tags Views
// @Produce json
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} dto.ErrorResponse "View is empty"
// @Failure 503 {object} dto.ErrorResponse
// @Router /views/all/last [get]
func (h *DocumentsHandler) LastOfAll(c *gin.Context) {
	doc, err := h.reader.Last(c.Request.Context())
	h.respondViewEdge(c, doc, err)
}

func (h *DocumentsHandler) respondViewEdge(c *gin.Context, doc *models.Document, err error) {
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if doc == nil {
		middleware.HandleError(c, &domainerrors.DomainError{
			Code:       domainerrors.ErrCodeNotFound,
			Message:    "view is empty",
			HTTPStatus: http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewDocumentResponse(doc))
}

func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
