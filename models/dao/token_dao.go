package dao

import (
	"token-registry-service/database"
	model "token-registry-service/models"
)

// TokenDAO token registry DAO
type TokenDAO struct {
	db database.Database
}

// NewTokenDAO create token DAO instance
func NewTokenDAO() *TokenDAO {
	return &TokenDAO{
		db: database.DB,
	}
}

// Create insert a new token atomically with its metadata, index entries,
// counters and mint event
func (d *TokenDAO) Create(token *model.Token, meta *model.TokenMetadata, event *model.EventLog, counters map[string]int64) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.CreateToken(token, meta, event, counters)
}

// Get fetch a token by ID
func (d *TokenDAO) Get(tokenID string) (*model.Token, error) {
	if d.db == nil {
		return nil, database.ErrDatabaseNotInitialized
	}
	return d.db.GetToken(tokenID)
}

// GetMetadata fetch a token's metadata by ID
func (d *TokenDAO) GetMetadata(tokenID string) (*model.TokenMetadata, error) {
	if d.db == nil {
		return nil, database.ErrDatabaseNotInitialized
	}
	return d.db.GetTokenMetadata(tokenID)
}

// Transfer persist an ownership change atomically with its index mutations
// and transfer event
func (d *TokenDAO) Transfer(token *model.Token, oldOwnerID string, event *model.EventLog) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.TransferToken(token, oldOwnerID, event)
}

// UpdateApprovals persist an approval-table change
func (d *TokenDAO) UpdateApprovals(token *model.Token, event *model.EventLog) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.UpdateTokenApprovals(token, event)
}

// Burn remove a token and all its records
func (d *TokenDAO) Burn(token *model.Token, event *model.EventLog, counters map[string]int64) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.BurnToken(token, event, counters)
}

// ListIDs paginated scan over all token IDs in insertion order
func (d *TokenDAO) ListIDs(cursor int64, size int) ([]string, int64, error) {
	if d.db == nil {
		return nil, 0, database.ErrDatabaseNotInitialized
	}
	return d.db.ListTokenIDs(cursor, size)
}

// ListByOwner paginated list of an owner's token IDs
func (d *TokenDAO) ListByOwner(ownerID string, cursor int64, size int) ([]string, int64, error) {
	if d.db == nil {
		return nil, 0, database.ErrDatabaseNotInitialized
	}
	return d.db.ListOwnerTokenIDs(ownerID, cursor, size)
}

// CountByOwner number of tokens held by an owner
func (d *TokenDAO) CountByOwner(ownerID string) (int64, error) {
	if d.db == nil {
		return 0, database.ErrDatabaseNotInitialized
	}
	return d.db.CountOwnerTokens(ownerID)
}

// ListEvents paginated read of the event log
func (d *TokenDAO) ListEvents(cursor int64, size int, eventType string) ([]*model.EventLog, int64, error) {
	if d.db == nil {
		return nil, 0, database.ErrDatabaseNotInitialized
	}
	return d.db.ListEvents(cursor, size, eventType)
}

// GetCounter read a persisted counter
func (d *TokenDAO) GetCounter(name string) (int64, error) {
	if d.db == nil {
		return 0, database.ErrDatabaseNotInitialized
	}
	return d.db.GetCounter(name)
}
