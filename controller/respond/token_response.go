package respond

import (
	model "token-registry-service/models"
	"token-registry-service/service/registry_service"
)

// TokenListResponse cursor-paginated token views
type TokenListResponse struct {
	Tokens     []*model.JsonToken `json:"tokens"`
	NextCursor int64              `json:"nextCursor"`
	HasMore    bool               `json:"hasMore"`
}

// ToTokenListResponse build a token list response
func ToTokenListResponse(tokens []*model.JsonToken, nextCursor int64, hasMore bool) *TokenListResponse {
	if tokens == nil {
		tokens = []*model.JsonToken{}
	}
	return &TokenListResponse{
		Tokens:     tokens,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}
}

// EventListResponse cursor-paginated event log entries
type EventListResponse struct {
	Events     []*model.EventLog `json:"events"`
	NextCursor int64             `json:"nextCursor"`
	HasMore    bool              `json:"hasMore"`
}

// ToEventListResponse build an event list response
func ToEventListResponse(events []*model.EventLog, nextCursor int64, hasMore bool) *EventListResponse {
	if events == nil {
		events = []*model.EventLog{}
	}
	return &EventListResponse{
		Events:     events,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}
}

// SupplyResponse token count for an owner or the whole registry
type SupplyResponse struct {
	Supply int64 `json:"supply"`
}

// ApprovalResponse result of an approval grant
type ApprovalResponse struct {
	TokenID    string `json:"token_id"`
	AccountID  string `json:"account_id"`
	ApprovalID uint64 `json:"approval_id"`
}

// ApprovedResponse result of an is-approved query
type ApprovedResponse struct {
	Approved bool `json:"approved"`
}

// MintResponse mint receipt wrapper
type MintResponse struct {
	Receipt *registry_service.MintReceipt `json:"receipt"`
}
