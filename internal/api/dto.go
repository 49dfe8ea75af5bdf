package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mirefeld/worldbuilder/internal/nodeservice"
)

// CreateNodeRequest is the request body for creating a node. Name is the
// display name; the server derives the storage key from it.
type CreateNodeRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Parent string `json:"parent"`
	Notes  string `json:"notes"`
	Force  bool   `json:"force"`
}

// Validate validates the create request.
func (r CreateNodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Type, validation.Length(0, 100)),
	)
}

// UpdateNodeRequest is the request body for replacing raw record content.
type UpdateNodeRequest struct {
	Content string `json:"content"`
}

// Validate validates the update request.
func (r UpdateNodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}

// NodeDetail is the full node response type (aliased from the domain layer).
type NodeDetail = nodeservice.NodeDetail

// NodeListItem is a lightweight item in a list response (aliased from the domain layer).
type NodeListItem = nodeservice.NodeListItem

// NodeListResponse wraps node listings.
type NodeListResponse struct {
	Nodes []NodeListItem `json:"nodes"`
	Total int            `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
