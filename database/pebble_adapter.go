package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	model "token-registry-service/models"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// PebbleDatabase PebbleDB implementation. All collections live in one store,
// namespaced by key prefix, so every ledger mutation commits in one batch.
type PebbleDatabase struct {
	db *pebble.DB

	eventSeqCounter atomic.Int64
}

// PebbleConfig PebbleDB configuration
type PebbleConfig struct {
	DataDir string
}

// Collection key prefixes and their key-value formats
const (
	prefixToken   = "token:"   // key: {token_id}, value: JSON(Token) - identifier registry
	prefixMeta    = "meta:"    // key: {token_id}, value: JSON(TokenMetadata)
	prefixOwner   = "owner:"   // key: {owner_id}:{token_id}, value: {token_id} - ownership index
	prefixSeq     = "seq:"     // key: {seq, zero padded}, value: {token_id} - insertion-order scan
	prefixEvent   = "event:"   // key: {seq, zero padded}, value: JSON(EventLog) - append-only log
	prefixCounter = "counter:" // key: {name}, value: decimal string
)

// Counter key for the event log sequence
const counterEventSeq = "event_seq"

// NewPebbleDatabase create PebbleDB database instance
func NewPebbleDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*PebbleConfig)
	if !ok {
		return nil, fmt.Errorf("invalid PebbleDB config type")
	}

	if err := os.MkdirAll(cfg.DataDir, 0777); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	storePath := filepath.Join(cfg.DataDir, "registry_db")
	db, err := pebble.Open(storePath, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open registry store at %s: %w", storePath, err)
	}

	pdb := &PebbleDatabase{db: db}

	if err := pdb.loadCounters(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load counters: %w", err)
	}

	log.Info().Str("path", storePath).Msg("registry store opened")
	return pdb, nil
}

// loadCounters load the event sequence counter from the counters collection
func (p *PebbleDatabase) loadCounters() error {
	if val, closer, err := p.db.Get(counterKey(counterEventSeq)); err == nil {
		count, _ := strconv.ParseInt(string(val), 10, 64)
		p.eventSeqCounter.Store(count)
		closer.Close()
	}
	return nil
}

func tokenKey(tokenID string) []byte {
	return []byte(prefixToken + tokenID)
}

func metaKey(tokenID string) []byte {
	return []byte(prefixMeta + tokenID)
}

func ownerKey(ownerID, tokenID string) []byte {
	return []byte(prefixOwner + ownerID + ":" + tokenID)
}

func seqKey(seq int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixSeq, seq))
}

func eventKey(seq int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixEvent, seq))
}

func counterKey(name string) []byte {
	return []byte(prefixCounter + name)
}

// prefixUpperBound exclusive upper bound for iterating every key with prefix
func prefixUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func (p *PebbleDatabase) newPrefixIter(prefix string) (*pebble.Iterator, error) {
	return p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: prefixUpperBound([]byte(prefix)),
	})
}

// setCounters stage counter updates into a batch
func setCounters(batch *pebble.Batch, counters map[string]int64) error {
	for name, value := range counters {
		if err := batch.Set(counterKey(name), []byte(strconv.FormatInt(value, 10)), nil); err != nil {
			return err
		}
	}
	return nil
}

// appendEvent stage an event record into a batch under the next sequence
// number. The in-memory counter only advances in commit, after the batch
// applied cleanly, so a failed operation never consumes a sequence.
func (p *PebbleDatabase) appendEvent(batch *pebble.Batch, event *model.EventLog) error {
	seq := p.eventSeqCounter.Load() + 1
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := batch.Set(eventKey(seq), data, nil); err != nil {
		return err
	}
	if err := batch.Set(counterKey(counterEventSeq), []byte(strconv.FormatInt(seq, 10)), nil); err != nil {
		return err
	}
	event.Seq = seq
	return nil
}

func (p *PebbleDatabase) commit(batch *pebble.Batch, withEvent bool) error {
	if err := p.db.Apply(batch, pebble.Sync); err != nil {
		return err
	}
	if withEvent {
		p.eventSeqCounter.Add(1)
	}
	return nil
}

// Token registry operations

// CreateToken insert a new token with its metadata, ownership index entry,
// scan index entry, counters and mint event in one atomic write. Fails with
// ErrAlreadyExists if the token ID is taken; nothing is written then.
func (p *PebbleDatabase) CreateToken(token *model.Token, meta *model.TokenMetadata, event *model.EventLog, counters map[string]int64) error {
	if _, closer, err := p.db.Get(tokenKey(token.TokenID)); err == nil {
		closer.Close()
		return ErrAlreadyExists
	} else if err != pebble.ErrNotFound {
		return err
	}

	tokenData, err := json.Marshal(token)
	if err != nil {
		return err
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(tokenKey(token.TokenID), tokenData, nil); err != nil {
		return err
	}
	if err := batch.Set(metaKey(token.TokenID), metaData, nil); err != nil {
		return err
	}
	if err := batch.Set(ownerKey(token.OwnerID, token.TokenID), []byte(token.TokenID), nil); err != nil {
		return err
	}
	if err := batch.Set(seqKey(token.Seq), []byte(token.TokenID), nil); err != nil {
		return err
	}
	if err := setCounters(batch, counters); err != nil {
		return err
	}
	if err := p.appendEvent(batch, event); err != nil {
		return err
	}

	return p.commit(batch, true)
}

func (p *PebbleDatabase) GetToken(tokenID string) (*model.Token, error) {
	data, closer, err := p.db.Get(tokenKey(tokenID))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	var token model.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (p *PebbleDatabase) GetTokenMetadata(tokenID string) (*model.TokenMetadata, error) {
	data, closer, err := p.db.Get(metaKey(tokenID))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	var meta model.TokenMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TransferToken move a token between owners: the updated record, both
// ownership index mutations and the transfer event commit together.
func (p *PebbleDatabase) TransferToken(token *model.Token, oldOwnerID string, event *model.EventLog) error {
	tokenData, err := json.Marshal(token)
	if err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(tokenKey(token.TokenID), tokenData, nil); err != nil {
		return err
	}
	if err := batch.Delete(ownerKey(oldOwnerID, token.TokenID), nil); err != nil {
		return err
	}
	if err := batch.Set(ownerKey(token.OwnerID, token.TokenID), []byte(token.TokenID), nil); err != nil {
		return err
	}
	if err := p.appendEvent(batch, event); err != nil {
		return err
	}

	return p.commit(batch, true)
}

// UpdateTokenApprovals rewrite a token's approval state. event may be nil
// for mutations that turn out to be no-ops at the ledger layer.
func (p *PebbleDatabase) UpdateTokenApprovals(token *model.Token, event *model.EventLog) error {
	tokenData, err := json.Marshal(token)
	if err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(tokenKey(token.TokenID), tokenData, nil); err != nil {
		return err
	}
	withEvent := event != nil
	if withEvent {
		if err := p.appendEvent(batch, event); err != nil {
			return err
		}
	}

	return p.commit(batch, withEvent)
}

// BurnToken remove a token and every record keyed by it in one atomic write
func (p *PebbleDatabase) BurnToken(token *model.Token, event *model.EventLog, counters map[string]int64) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	if err := batch.Delete(tokenKey(token.TokenID), nil); err != nil {
		return err
	}
	if err := batch.Delete(metaKey(token.TokenID), nil); err != nil {
		return err
	}
	if err := batch.Delete(ownerKey(token.OwnerID, token.TokenID), nil); err != nil {
		return err
	}
	if err := batch.Delete(seqKey(token.Seq), nil); err != nil {
		return err
	}
	if err := setCounters(batch, counters); err != nil {
		return err
	}
	if err := p.appendEvent(batch, event); err != nil {
		return err
	}

	return p.commit(batch, true)
}

// ListTokenIDs paginated scan over all minted token IDs in insertion order
func (p *PebbleDatabase) ListTokenIDs(cursor int64, size int) ([]string, int64, error) {
	iter, err := p.newPrefixIter(prefixSeq)
	if err != nil {
		return nil, 0, err
	}
	defer iter.Close()

	if cursor < 0 {
		cursor = 0
	}

	ids := make([]string, 0, size)
	var pos int64
	for iter.First(); iter.Valid(); iter.Next() {
		if pos >= cursor {
			ids = append(ids, string(iter.Value()))
			if len(ids) >= size {
				break
			}
		}
		pos++
	}

	nextCursor := cursor + int64(len(ids))
	return ids, nextCursor, nil
}

// Ownership index operations

// ListOwnerTokenIDs paginated list of an owner's token IDs. An owner with no
// entries yields an empty page, never an error.
func (p *PebbleDatabase) ListOwnerTokenIDs(ownerID string, cursor int64, size int) ([]string, int64, error) {
	iter, err := p.newPrefixIter(prefixOwner + ownerID + ":")
	if err != nil {
		return nil, 0, err
	}
	defer iter.Close()

	if cursor < 0 {
		cursor = 0
	}

	ids := make([]string, 0, size)
	var pos int64
	for iter.First(); iter.Valid(); iter.Next() {
		if pos >= cursor {
			ids = append(ids, string(iter.Value()))
			if len(ids) >= size {
				break
			}
		}
		pos++
	}

	nextCursor := cursor + int64(len(ids))
	return ids, nextCursor, nil
}

func (p *PebbleDatabase) CountOwnerTokens(ownerID string) (int64, error) {
	iter, err := p.newPrefixIter(prefixOwner + ownerID + ":")
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var count int64
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}

	return count, nil
}

// RebuildOwnershipIndex drop and rebuild the ownership index from the token
// registry. The index is derived data; the registry is authoritative. Used
// by the offline reindex tool, never during serving.
func (p *PebbleDatabase) RebuildOwnershipIndex(onToken func(tokenID string)) (int64, error) {
	batch := p.db.NewBatch()
	defer batch.Close()

	ownerPrefix := []byte(prefixOwner)
	if err := batch.DeleteRange(ownerPrefix, prefixUpperBound(ownerPrefix), nil); err != nil {
		return 0, err
	}

	iter, err := p.newPrefixIter(prefixToken)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var count int64
	for iter.First(); iter.Valid(); iter.Next() {
		var token model.Token
		if err := json.Unmarshal(iter.Value(), &token); err != nil {
			return 0, fmt.Errorf("corrupt token record %q: %w", iter.Key(), err)
		}
		if err := batch.Set(ownerKey(token.OwnerID, token.TokenID), []byte(token.TokenID), nil); err != nil {
			return 0, err
		}
		count++
		if onToken != nil {
			onToken(token.TokenID)
		}
	}

	if err := p.db.Apply(batch, pebble.Sync); err != nil {
		return 0, err
	}
	return count, nil
}

// Event log operations

// ListEvents paginated read of the event log in append order, optionally
// filtered by event type. The type probe reads the stored line directly so
// records never need a full unmarshal to be skipped.
func (p *PebbleDatabase) ListEvents(cursor int64, size int, eventType string) ([]*model.EventLog, int64, error) {
	iter, err := p.newPrefixIter(prefixEvent)
	if err != nil {
		return nil, 0, err
	}
	defer iter.Close()

	if cursor < 0 {
		cursor = 0
	}

	events := make([]*model.EventLog, 0, size)
	var pos int64
	for iter.First(); iter.Valid(); iter.Next() {
		if eventType != "" && gjson.GetBytes(iter.Value(), "event").String() != eventType {
			continue
		}
		if pos >= cursor {
			var event model.EventLog
			if err := json.Unmarshal(iter.Value(), &event); err != nil {
				return nil, 0, fmt.Errorf("corrupt event record %q: %w", iter.Key(), err)
			}
			seqStr := strings.TrimPrefix(string(iter.Key()), prefixEvent)
			event.Seq, _ = strconv.ParseInt(seqStr, 10, 64)
			events = append(events, &event)
			if len(events) >= size {
				break
			}
		}
		pos++
	}

	nextCursor := cursor + int64(len(events))
	return events, nextCursor, nil
}

func (p *PebbleDatabase) CountEvents() (int64, error) {
	return p.eventSeqCounter.Load(), nil
}

// Counter operations

// GetCounter read a persisted counter; missing counters read as zero
func (p *PebbleDatabase) GetCounter(name string) (int64, error) {
	data, closer, err := p.db.Get(counterKey(name))
	if err != nil {
		if err == pebble.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	defer closer.Close()

	return strconv.ParseInt(string(data), 10, 64)
}

// Close close the store
func (p *PebbleDatabase) Close() error {
	return p.db.Close()
}
