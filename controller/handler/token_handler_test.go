package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"token-registry-service/conf"
	"token-registry-service/controller"
	"token-registry-service/controller/respond"
	"token-registry-service/database"
	"token-registry-service/service/registry_service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &conf.Config{}
	cfg.Database.DataDir = t.TempDir()
	cfg.Contract.AccountID = "registry.near"
	cfg.Mint.Price = "100"
	cfg.Mint.StoragePricePerByte = "0"
	conf.ApplyDefaults(cfg)
	conf.Cfg = cfg

	require.NoError(t, database.InitDatabase(database.DBTypePebble, &database.PebbleConfig{
		DataDir: cfg.Database.DataDir,
	}))
	t.Cleanup(func() {
		if database.DB != nil {
			database.DB.Close()
			database.DB = nil
		}
	})

	registry, err := registry_service.NewRegistryService()
	require.NoError(t, err)

	return controller.SetupRegistryRouter(registry)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) string {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func mintOverHTTP(t *testing.T, router *gin.Engine, receiverID string) string {
	t.Helper()
	body := doJSON(t, router, "POST", "/api/v1/tokens/mint", gin.H{
		"sender_id":   "registry.near",
		"receiver_id": receiverID,
		"deposit":     "100",
	})
	require.Equal(t, int64(respond.CodeSuccess), gjson.Get(body, "code").Int(), body)
	return gjson.Get(body, "data.receipt.token.token_id").String()
}

func TestMintAndGetTokenOverHTTP(t *testing.T) {
	router := setupRouter(t)

	tokenID := mintOverHTTP(t, router, "alice.near")
	assert.Equal(t, "1", tokenID)

	body := doJSON(t, router, "GET", "/api/v1/tokens/1", nil)
	assert.Equal(t, int64(respond.CodeSuccess), gjson.Get(body, "code").Int())
	assert.Equal(t, "alice.near", gjson.Get(body, "data.owner_id").String())

	body = doJSON(t, router, "GET", "/api/v1/supply", nil)
	assert.Equal(t, int64(1), gjson.Get(body, "data.supply").Int())
}

func TestErrorCodeMapping(t *testing.T) {
	router := setupRouter(t)
	mintOverHTTP(t, router, "alice.near")

	// Unknown token
	body := doJSON(t, router, "GET", "/api/v1/tokens/999", nil)
	assert.Equal(t, int64(respond.CodeNotFound), gjson.Get(body, "code").Int())

	// Caller without rights
	body = doJSON(t, router, "POST", "/api/v1/tokens/transfer", gin.H{
		"sender_id": "stranger.near", "receiver_id": "bob.near", "token_id": "1", "deposit": "1",
	})
	assert.Equal(t, int64(respond.CodeUnauthorized), gjson.Get(body, "code").Int())

	// Deposit below the mint price
	body = doJSON(t, router, "POST", "/api/v1/tokens/mint", gin.H{
		"sender_id": "alice.near", "deposit": "1",
	})
	assert.Equal(t, int64(respond.CodePaymentRequired), gjson.Get(body, "code").Int())

	// Expected-owner mismatch
	body = doJSON(t, router, "POST", "/api/v1/tokens/transfer", gin.H{
		"sender_id": "alice.near", "receiver_id": "bob.near", "token_id": "1",
		"from_expected": "carol.near", "deposit": "1",
	})
	assert.Equal(t, int64(respond.CodeConflict), gjson.Get(body, "code").Int())

	// Malformed account
	body = doJSON(t, router, "POST", "/api/v1/tokens/transfer", gin.H{
		"sender_id": "alice.near", "receiver_id": "Not Valid", "token_id": "1", "deposit": "1",
	})
	assert.Equal(t, int64(respond.CodeInvalidParam), gjson.Get(body, "code").Int())
}

func TestApprovalFlowOverHTTP(t *testing.T) {
	router := setupRouter(t)
	mintOverHTTP(t, router, "alice.near")

	body := doJSON(t, router, "POST", "/api/v1/tokens/1/approve", gin.H{
		"sender_id": "alice.near", "account_id": "market.near",
	})
	require.Equal(t, int64(respond.CodeSuccess), gjson.Get(body, "code").Int(), body)
	assert.Equal(t, int64(0), gjson.Get(body, "data.approval_id").Int())

	body = doJSON(t, router, "GET", "/api/v1/tokens/1/approved?account_id=market.near&approval_id=0", nil)
	assert.True(t, gjson.Get(body, "data.approved").Bool())

	body = doJSON(t, router, "POST", "/api/v1/tokens/1/revoke", gin.H{
		"sender_id": "alice.near", "account_id": "market.near",
	})
	require.Equal(t, int64(respond.CodeSuccess), gjson.Get(body, "code").Int())

	body = doJSON(t, router, "GET", "/api/v1/tokens/1/approved?account_id=market.near", nil)
	assert.False(t, gjson.Get(body, "data.approved").Bool())
}

func TestTransferAndBurnOverHTTP(t *testing.T) {
	router := setupRouter(t)
	mintOverHTTP(t, router, "alice.near")

	body := doJSON(t, router, "POST", "/api/v1/tokens/transfer", gin.H{
		"sender_id": "alice.near", "receiver_id": "bob.near", "token_id": "1", "deposit": "1",
	})
	require.Equal(t, int64(respond.CodeSuccess), gjson.Get(body, "code").Int(), body)
	assert.Equal(t, "bob.near", gjson.Get(body, "data.owner_id").String())

	body = doJSON(t, router, "POST", "/api/v1/tokens/1/burn", gin.H{
		"sender_id": "bob.near",
	})
	require.Equal(t, int64(respond.CodeSuccess), gjson.Get(body, "code").Int())

	body = doJSON(t, router, "GET", "/api/v1/tokens/1", nil)
	assert.Equal(t, int64(respond.CodeNotFound), gjson.Get(body, "code").Int())
}

func TestListTokensOverHTTP(t *testing.T) {
	router := setupRouter(t)
	for i := 0; i < 3; i++ {
		mintOverHTTP(t, router, "alice.near")
	}

	body := doJSON(t, router, "GET", "/api/v1/tokens?cursor=0&size=2", nil)
	tokens := gjson.Get(body, "data.tokens").Array()
	require.Len(t, tokens, 2)
	assert.True(t, gjson.Get(body, "data.hasMore").Bool())
	assert.Equal(t, int64(2), gjson.Get(body, "data.nextCursor").Int())

	body = doJSON(t, router, "GET", "/api/v1/owners/alice.near/tokens", nil)
	assert.Len(t, gjson.Get(body, "data.tokens").Array(), 3)

	body = doJSON(t, router, "GET", "/api/v1/owners/bob.near/supply", nil)
	assert.Equal(t, int64(0), gjson.Get(body, "data.supply").Int())
}

func TestEventsOverHTTP(t *testing.T) {
	router := setupRouter(t)
	mintOverHTTP(t, router, "alice.near")
	doJSON(t, router, "POST", "/api/v1/tokens/transfer", gin.H{
		"sender_id": "alice.near", "receiver_id": "bob.near", "token_id": "1", "deposit": "1",
	})

	body := doJSON(t, router, "GET", "/api/v1/events", nil)
	events := gjson.Get(body, "data.events").Array()
	require.Len(t, events, 2)
	assert.Equal(t, "nft_mint", events[0].Get("event").String())
	assert.Equal(t, "nep171", events[0].Get("standard").String())

	body = doJSON(t, router, "GET", "/api/v1/events?type=nft_transfer", nil)
	events = gjson.Get(body, "data.events").Array()
	require.Len(t, events, 1)
	assert.Equal(t, "bob.near", events[0].Get("data.0.new_owner_id").String())

	body = doJSON(t, router, "GET", "/api/v1/events?type=bogus", nil)
	assert.Equal(t, int64(respond.CodeInvalidParam), gjson.Get(body, "code").Int())
}

func TestMetadataAndHealth(t *testing.T) {
	router := setupRouter(t)

	body := doJSON(t, router, "GET", "/api/v1/metadata", nil)
	assert.Equal(t, "nft-1.0.0", gjson.Get(body, "data.spec").String())
	assert.Equal(t, "Token Registry", gjson.Get(body, "data.name").String())

	body = doJSON(t, router, "GET", "/health", nil)
	assert.Equal(t, "ok", gjson.Get(body, "status").String())
}
