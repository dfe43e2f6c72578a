// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/unifiedui/document-service/internal/domain/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// DocumentResponse represents a single document.
type DocumentResponse struct {
	ID     string         `json:"id"`
	Rev    string         `json:"rev,omitempty"`
	Fields map[string]any `json:"fields"`
}

// BulkGetResponse represents the documents resolved by a bulk request.
type BulkGetResponse struct {
	Documents []*DocumentResponse `json:"documents"`
	Total     int                 `json:"total"`
}

// CountResponse represents the number of documents in a view.
type CountResponse struct {
	Count int64 `json:"count"`
}

// NewDocumentResponse converts a document model into its response form.
func NewDocumentResponse(doc *models.Document) *DocumentResponse {
	if doc == nil {
		return nil
	}
	fields := doc.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return &DocumentResponse{
		ID:     doc.ID,
		Rev:    doc.Rev,
		Fields: fields,
	}
}

// NewBulkGetResponse converts document models into a bulk response.
func NewBulkGetResponse(docs []*models.Document) *BulkGetResponse {
	resp := &BulkGetResponse{
		Documents: make([]*DocumentResponse, 0, len(docs)),
	}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, NewDocumentResponse(doc))
	}
	resp.Total = len(resp.Documents)
	return resp
}
