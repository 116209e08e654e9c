package dto

import "github.com/SscSPs/fleetops_finance/internal/core/domain"

// ListAuditParams defines the query parameters for paging a trip's audit trail.
type ListAuditParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListAuditResponse is one newest-first page of audit entries.
type ListAuditResponse struct {
	Entries   []domain.TripAuditLogEntry `json:"entries"`
	NextToken *string                    `json:"nextToken,omitempty"`
}

// ToListAuditResponse converts a domain.AuditPage to its DTO.
func ToListAuditResponse(page *domain.AuditPage) ListAuditResponse {
	entries := page.Entries
	if entries == nil {
		entries = []domain.TripAuditLogEntry{}
	}
	return ListAuditResponse{Entries: entries, NextToken: page.NextToken}
}
