// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// BulkGetRequest represents a request to load several documents by id.
type BulkGetRequest struct {
	IDs []string `json:"ids" binding:"required"`
	// Strict makes the request fail with 404 when none of the ids resolve.
	Strict bool `json:"strict"`
}
