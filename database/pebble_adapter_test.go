package database

import (
	"fmt"
	"testing"

	model "token-registry-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, dataDir string) Database {
	t.Helper()
	db, err := NewPebbleDatabase(&PebbleConfig{DataDir: dataDir})
	require.NoError(t, err)
	return db
}

func testToken(tokenID, ownerID string, seq int64) *model.Token {
	return &model.Token{
		TokenID:            tokenID,
		OwnerID:            ownerID,
		ApprovedAccountIDs: make(map[string]uint64),
		Seq:                seq,
	}
}

func createTestToken(t *testing.T, db Database, tokenID, ownerID string, seq int64) *model.Token {
	t.Helper()
	token := testToken(tokenID, ownerID, seq)
	meta := &model.TokenMetadata{Title: "Token #" + tokenID}
	event := model.NewMintEvent(ownerID, []string{tokenID}, "")
	counters := map[string]int64{
		CounterTokenMinted: seq,
		CounterTokenSupply: seq,
	}
	require.NoError(t, db.CreateToken(token, meta, event, counters))
	return token
}

func TestCreateAndGetToken(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	createTestToken(t, db, "1", "alice.near", 1)

	token, err := db.GetToken("1")
	require.NoError(t, err)
	assert.Equal(t, "alice.near", token.OwnerID)
	assert.Equal(t, int64(1), token.Seq)

	meta, err := db.GetTokenMetadata("1")
	require.NoError(t, err)
	assert.Equal(t, "Token #1", meta.Title)

	count, err := db.CountOwnerTokens("alice.near")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	minted, err := db.GetCounter(CounterTokenMinted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), minted)
}

func TestGetUnknownToken(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	_, err := db.GetToken("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetTokenMetadata("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDuplicateWritesNothing(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	createTestToken(t, db, "1", "alice.near", 1)

	dup := testToken("1", "bob.near", 2)
	event := model.NewMintEvent("bob.near", []string{"1"}, "")
	err := db.CreateToken(dup, &model.TokenMetadata{}, event, map[string]int64{CounterTokenMinted: 2})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The failed mint must leave no trace: owner unchanged, counters
	// unchanged, no event appended
	token, err := db.GetToken("1")
	require.NoError(t, err)
	assert.Equal(t, "alice.near", token.OwnerID)

	minted, err := db.GetCounter(CounterTokenMinted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), minted)

	total, err := db.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTransferTokenMovesOwnerIndex(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	token := createTestToken(t, db, "1", "alice.near", 1)

	token.OwnerID = "bob.near"
	event := model.NewTransferEvent("alice.near", "bob.near", "", []string{"1"}, "")
	require.NoError(t, db.TransferToken(token, "alice.near", event))

	aliceCount, err := db.CountOwnerTokens("alice.near")
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceCount)

	bobIDs, _, err := db.ListOwnerTokenIDs("bob.near", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, bobIDs)

	stored, err := db.GetToken("1")
	require.NoError(t, err)
	assert.Equal(t, "bob.near", stored.OwnerID)
}

func TestUpdateTokenApprovalsWithoutEvent(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	token := createTestToken(t, db, "1", "alice.near", 1)

	token.ApprovedAccountIDs["market.near"] = 0
	token.NextApprovalID = 1
	require.NoError(t, db.UpdateTokenApprovals(token, nil))

	stored, err := db.GetToken("1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stored.ApprovedAccountIDs["market.near"])

	total, err := db.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total) // only the mint event
}

func TestBurnTokenRemovesAllRecords(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	token := createTestToken(t, db, "1", "alice.near", 1)

	event := model.NewBurnEvent("alice.near", "", []string{"1"})
	require.NoError(t, db.BurnToken(token, event, map[string]int64{CounterTokenSupply: 0}))

	_, err := db.GetToken("1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetTokenMetadata("1")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := db.CountOwnerTokens("alice.near")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	ids, _, err := db.ListTokenIDs(0, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	supply, err := db.GetCounter(CounterTokenSupply)
	require.NoError(t, err)
	assert.Equal(t, int64(0), supply)
}

func TestListTokenIDsPagination(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	for seq := int64(1); seq <= 5; seq++ {
		createTestToken(t, db, fmt.Sprintf("%d", seq), "alice.near", seq)
	}

	ids, next, err := db.ListTokenIDs(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids)
	assert.Equal(t, int64(2), next)

	ids, next, err = db.ListTokenIDs(next, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, ids)
	assert.Equal(t, int64(4), next)

	ids, next, err = db.ListTokenIDs(next, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, ids)
	assert.Equal(t, int64(5), next)
}

func TestListEventsFilterAndOrder(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	token := createTestToken(t, db, "1", "alice.near", 1)
	createTestToken(t, db, "2", "alice.near", 2)

	token.OwnerID = "bob.near"
	event := model.NewTransferEvent("alice.near", "bob.near", "", []string{"1"}, "")
	require.NoError(t, db.TransferToken(token, "alice.near", event))

	events, _, err := db.ListEvents(0, 10, "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, int64(i+1), e.Seq)
	}
	assert.Equal(t, model.EventTypeMint, events[0].Event)
	assert.Equal(t, model.EventTypeTransfer, events[2].Event)

	transfers, _, err := db.ListEvents(0, 10, model.EventTypeTransfer)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "bob.near", transfers[0].Data[0].NewOwnerID)
}

func TestCountersPersistAcrossReopen(t *testing.T) {
	dataDir := t.TempDir()

	db := openTestStore(t, dataDir)
	createTestToken(t, db, "1", "alice.near", 1)
	createTestToken(t, db, "2", "alice.near", 2)
	require.NoError(t, db.Close())

	db = openTestStore(t, dataDir)
	defer db.Close()

	minted, err := db.GetCounter(CounterTokenMinted)
	require.NoError(t, err)
	assert.Equal(t, int64(2), minted)

	// Event sequence continues where the previous run left off
	total, err := db.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	token := testToken("3", "alice.near", 3)
	event := model.NewMintEvent("alice.near", []string{"3"}, "")
	require.NoError(t, db.CreateToken(token, &model.TokenMetadata{}, event, nil))
	assert.Equal(t, int64(3), event.Seq)
}

func TestRebuildOwnershipIndex(t *testing.T) {
	db := openTestStore(t, t.TempDir())
	defer db.Close()

	token := createTestToken(t, db, "1", "alice.near", 1)
	createTestToken(t, db, "2", "bob.near", 2)

	token.OwnerID = "bob.near"
	event := model.NewTransferEvent("alice.near", "bob.near", "", []string{"1"}, "")
	require.NoError(t, db.TransferToken(token, "alice.near", event))

	var seen []string
	rebuilt, err := db.RebuildOwnershipIndex(func(tokenID string) {
		seen = append(seen, tokenID)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rebuilt)
	assert.ElementsMatch(t, []string{"1", "2"}, seen)

	// The rebuilt index matches the registry
	bobCount, err := db.CountOwnerTokens("bob.near")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bobCount)

	aliceCount, err := db.CountOwnerTokens("alice.near")
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceCount)
}
