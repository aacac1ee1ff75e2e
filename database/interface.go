package database

import (
	model "token-registry-service/models"
)

// Counter names persisted alongside the registry tables
const (
	CounterTokenMinted      = "token_minted"       // Monotonic mint counter (cap accounting)
	CounterTokenMintedUsers = "token_minted_users" // Mints requested by external accounts
	CounterTokenSupply      = "token_supply"       // Live token count (mints minus burns)
	CounterMediaIndex       = "media_index"        // Rotating metadata template index
)

// Database interface for different database implementations.
//
// Mutating methods take every record touched by one ledger operation and
// commit them as a single atomic write, with the event record appended in
// the same commit: either the whole operation is observable or none of it.
type Database interface {
	// Token registry operations
	CreateToken(token *model.Token, meta *model.TokenMetadata, event *model.EventLog, counters map[string]int64) error
	GetToken(tokenID string) (*model.Token, error)
	GetTokenMetadata(tokenID string) (*model.TokenMetadata, error)
	TransferToken(token *model.Token, oldOwnerID string, event *model.EventLog) error
	UpdateTokenApprovals(token *model.Token, event *model.EventLog) error
	BurnToken(token *model.Token, event *model.EventLog, counters map[string]int64) error
	ListTokenIDs(cursor int64, size int) ([]string, int64, error)

	// Ownership index operations
	ListOwnerTokenIDs(ownerID string, cursor int64, size int) ([]string, int64, error)
	CountOwnerTokens(ownerID string) (int64, error)
	RebuildOwnershipIndex(onToken func(tokenID string)) (int64, error)

	// Event log operations
	ListEvents(cursor int64, size int, eventType string) ([]*model.EventLog, int64, error)
	CountEvents() (int64, error)

	// Counter operations
	GetCounter(name string) (int64, error)

	// General operations
	Close() error
}

// DBType database type
type DBType string

const (
	DBTypePebble DBType = "pebble"
)

// Global database instance
var DB Database

// InitDatabase initialize database with specified type
func InitDatabase(dbType DBType, config interface{}) error {
	var err error

	switch dbType {
	case DBTypePebble:
		DB, err = NewPebbleDatabase(config)
	default:
		return ErrUnsupportedDBType
	}

	return err
}
