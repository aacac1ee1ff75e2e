package models

// Token ledger record for a single minted token. A record exists in the
// registry iff the token has been minted and not burned.
type Token struct {
	TokenID string `json:"token_id"` // Token ID (primary key, opaque string)
	OwnerID string `json:"owner_id"` // Current owner account

	// Delegate account -> approval ID. Approval IDs are nonces issued from
	// NextApprovalID; a stored ID is always strictly less than it.
	ApprovedAccountIDs map[string]uint64 `json:"approved_account_ids"`
	NextApprovalID     uint64            `json:"next_approval_id"`

	// Account -> basis points, opaque to the ledger beyond validation at mint
	Royalty map[string]uint16 `json:"royalty,omitempty"`

	// Insertion sequence, assigned at mint; keys the sequential scan index
	Seq int64 `json:"seq"`
}

// TokenMetadata per-token metadata, immutable after mint
type TokenMetadata struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Media         string `json:"media,omitempty"`
	MediaHash     string `json:"media_hash,omitempty"`
	Copies        uint64 `json:"copies,omitempty"`
	IssuedAt      string `json:"issued_at,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
	StartsAt      string `json:"starts_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
	Extra         string `json:"extra,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceHash string `json:"reference_hash,omitempty"`
}

// JsonToken read-only view of a token: owner, metadata and an approval
// snapshot, as returned by the query surface.
type JsonToken struct {
	TokenID            string            `json:"token_id"`
	OwnerID            string            `json:"owner_id"`
	Metadata           *TokenMetadata    `json:"metadata,omitempty"`
	ApprovedAccountIDs map[string]uint64 `json:"approved_account_ids"`
	Royalty            map[string]uint16 `json:"royalty,omitempty"`
}

// ContractMetadata contract-level descriptor
type ContractMetadata struct {
	Spec    string `json:"spec"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Icon    string `json:"icon,omitempty"`
	BaseURI string `json:"base_uri,omitempty"`
}

// View build the read-only view of a token
func (t *Token) View(meta *TokenMetadata) *JsonToken {
	approvals := make(map[string]uint64, len(t.ApprovedAccountIDs))
	for account, id := range t.ApprovedAccountIDs {
		approvals[account] = id
	}
	return &JsonToken{
		TokenID:            t.TokenID,
		OwnerID:            t.OwnerID,
		Metadata:           meta,
		ApprovedAccountIDs: approvals,
		Royalty:            t.Royalty,
	}
}
