package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintEventWireFormat(t *testing.T) {
	event := NewMintEvent("alice.near", []string{"1"}, "")
	event.Seq = 42

	line := event.String()
	assert.Equal(t,
		`{"standard":"nep171","version":"1.0.0","event":"nft_mint","data":[{"owner_id":"alice.near","token_ids":["1"]}]}`,
		line)
	// Seq is a storage key, never part of the wire line
	assert.NotContains(t, line, "42")
}

func TestTransferEventWireFormat(t *testing.T) {
	event := NewTransferEvent("alice.near", "bob.near", "market.near", []string{"7"}, "sold")

	line := event.String()
	assert.Equal(t,
		`{"standard":"nep171","version":"1.0.0","event":"nft_transfer","data":[{"old_owner_id":"alice.near","new_owner_id":"bob.near","authorized_id":"market.near","token_ids":["7"],"memo":"sold"}]}`,
		line)
}

func TestApproveEventCarriesApprovalID(t *testing.T) {
	event := NewApproveEvent("alice.near", "market.near", 0, []string{"7"}, "")

	var decoded EventLog
	require.NoError(t, json.Unmarshal([]byte(event.String()), &decoded))
	require.Len(t, decoded.Data, 1)
	require.NotNil(t, decoded.Data[0].ApprovedID)
	// approval ID zero is a real nonce and must survive the round trip
	assert.Equal(t, uint64(0), *decoded.Data[0].ApprovedID)
}

func TestRevokeAllEventOmitsDelegate(t *testing.T) {
	event := NewRevokeEvent("alice.near", "", []string{"7"})
	assert.NotContains(t, event.String(), "authorized_id")
}

func TestBurnEventWireFormat(t *testing.T) {
	event := NewBurnEvent("alice.near", "market.near", []string{"7"})
	assert.Equal(t,
		`{"standard":"nep171","version":"1.0.0","event":"nft_burn","data":[{"owner_id":"alice.near","authorized_id":"market.near","token_ids":["7"]}]}`,
		event.String())
}
