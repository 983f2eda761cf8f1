package dto

import (
	"time"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/google/uuid"
)

// Name is one localized display name.
type Name struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Ref names a record by code, uuid, or both.
type Ref struct {
	Code string `json:"code,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

// AuditResponse carries the audit fields of every resource.
type AuditResponse struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ErrorItem is one message of an error response.
type ErrorItem struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
	Status string      `json:"status" example:"bad_request"`
}

// NewErrorResponse builds an ErrorResponse from messages.
func NewErrorResponse(status string, messages []string) ErrorResponse {
	items := make([]ErrorItem, len(messages))
	for i, m := range messages {
		items[i] = ErrorItem{Message: m}
	}
	return ErrorResponse{Errors: items, Status: status}
}

// RefFromPath reads a path segment as a uuid when it parses as one and as a code otherwise.
func RefFromPath(segment string) domain.EntityRef {
	if id, err := uuid.Parse(segment); err == nil {
		return domain.EntityRef{UUID: id.String()}
	}
	return domain.EntityRef{Code: segment}
}

// ToEntityRef converts a Ref to its domain form.
func (r Ref) ToEntityRef() domain.EntityRef {
	return domain.EntityRef{Code: r.Code, UUID: r.UUID}
}

func optionalRef(r *Ref) *domain.EntityRef {
	if r == nil {
		return nil
	}
	ref := r.ToEntityRef()
	return &ref
}

func toDomainNames(names []Name) []domain.Name {
	if names == nil {
		return nil
	}
	out := make([]domain.Name, len(names))
	for i, n := range names {
		out[i] = domain.Name{Name: n.Name, Language: n.Language}
	}
	return out
}

func toNames(names []domain.Name) []Name {
	out := make([]Name, len(names))
	for i, n := range names {
		out[i] = Name{Name: n.Name, Language: n.Language}
	}
	return out
}

func toAuditResponse(a domain.AuditFields) AuditResponse {
	return AuditResponse{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
