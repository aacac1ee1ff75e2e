package models

import "encoding/json"

// Event log wire format, one JSON line per successful mutating operation:
// {"standard":"nep171","version":"1.0.0","event":"nft_mint","data":[...]}
const (
	EventStandardName    = "nep171"
	EventStandardVersion = "1.0.0"
)

// Event types
const (
	EventTypeMint     = "nft_mint"
	EventTypeTransfer = "nft_transfer"
	EventTypeApprove  = "nft_approve"
	EventTypeRevoke   = "nft_revoke"
	EventTypeBurn     = "nft_burn"
)

// EventLog immutable, append-only log entry. Seq is the storage key, not
// part of the wire format; it is filled in when a record is read back.
type EventLog struct {
	Seq      int64          `json:"-"`
	Standard string         `json:"standard"`
	Version  string         `json:"version"`
	Event    string         `json:"event"`
	Data     []EventLogData `json:"data"`
}

// EventLogData one entry of an event's data list. Field usage depends on
// the event type; token_ids is always present.
type EventLogData struct {
	OwnerID      string   `json:"owner_id,omitempty"`
	OldOwnerID   string   `json:"old_owner_id,omitempty"`
	NewOwnerID   string   `json:"new_owner_id,omitempty"`
	AuthorizedID string   `json:"authorized_id,omitempty"`
	ApprovedID   *uint64  `json:"approval_id,omitempty"`
	TokenIDs     []string `json:"token_ids"`
	Memo         string   `json:"memo,omitempty"`
}

func newEventLog(eventType string, data EventLogData) *EventLog {
	return &EventLog{
		Standard: EventStandardName,
		Version:  EventStandardVersion,
		Event:    eventType,
		Data:     []EventLogData{data},
	}
}

// NewMintEvent event for a completed mint
func NewMintEvent(ownerID string, tokenIDs []string, memo string) *EventLog {
	return newEventLog(EventTypeMint, EventLogData{
		OwnerID:  ownerID,
		TokenIDs: tokenIDs,
		Memo:     memo,
	})
}

// NewTransferEvent event for a completed transfer. authorizedID is the
// delegate that performed the transfer, empty when the owner did.
func NewTransferEvent(oldOwnerID, newOwnerID, authorizedID string, tokenIDs []string, memo string) *EventLog {
	return newEventLog(EventTypeTransfer, EventLogData{
		OldOwnerID:   oldOwnerID,
		NewOwnerID:   newOwnerID,
		AuthorizedID: authorizedID,
		TokenIDs:     tokenIDs,
		Memo:         memo,
	})
}

// NewApproveEvent event for a granted approval
func NewApproveEvent(ownerID, delegateID string, approvalID uint64, tokenIDs []string, memo string) *EventLog {
	return newEventLog(EventTypeApprove, EventLogData{
		OwnerID:      ownerID,
		AuthorizedID: delegateID,
		ApprovedID:   &approvalID,
		TokenIDs:     tokenIDs,
		Memo:         memo,
	})
}

// NewRevokeEvent event for a revoked approval. delegateID is empty for a
// revoke-all.
func NewRevokeEvent(ownerID, delegateID string, tokenIDs []string) *EventLog {
	return newEventLog(EventTypeRevoke, EventLogData{
		OwnerID:      ownerID,
		AuthorizedID: delegateID,
		TokenIDs:     tokenIDs,
	})
}

// NewBurnEvent event for a burned token
func NewBurnEvent(ownerID, authorizedID string, tokenIDs []string) *EventLog {
	return newEventLog(EventTypeBurn, EventLogData{
		OwnerID:      ownerID,
		AuthorizedID: authorizedID,
		TokenIDs:     tokenIDs,
	})
}

// String serialize the event as its wire-format log line
func (e *EventLog) String() string {
	data, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(data)
}
