package handler

import (
	"errors"
	"strconv"

	"token-registry-service/controller/respond"
	"token-registry-service/service/registry_service"

	"github.com/gin-gonic/gin"
)

// TokenHandler token registry handler
type TokenHandler struct {
	registry *registry_service.RegistryService
}

// NewTokenHandler create token handler instance
func NewTokenHandler(registry *registry_service.RegistryService) *TokenHandler {
	return &TokenHandler{
		registry: registry,
	}
}

// ledgerError map a ledger error onto the response envelope
func ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry_service.ErrUnknownToken):
		respond.NotFound(c, err.Error())
	case errors.Is(err, registry_service.ErrDuplicateTokenID),
		errors.Is(err, registry_service.ErrOwnerMismatch):
		respond.Conflict(c, err.Error())
	case errors.Is(err, registry_service.ErrNotOwner),
		errors.Is(err, registry_service.ErrUnauthorized):
		respond.Unauthorized(c, err.Error())
	case errors.Is(err, registry_service.ErrCapExceeded):
		respond.CapExceeded(c, err.Error())
	case errors.Is(err, registry_service.ErrInsufficientPayment):
		respond.PaymentRequired(c, err.Error())
	case errors.Is(err, registry_service.ErrInvalidAccount),
		errors.Is(err, registry_service.ErrInvalidTokenID),
		errors.Is(err, registry_service.ErrTooManyRoyaltyShares),
		errors.Is(err, registry_service.ErrInvalidRoyaltyTotal):
		respond.InvalidParam(c, err.Error())
	default:
		respond.ServerError(c, err.Error())
	}
}

// parsePage parse cursor/size query parameters with clamped page size
func parsePage(c *gin.Context) (int64, int) {
	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)

	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return cursor, int(size)
}

// Mint mint a new token under the configured drop
// @Summary Mint a token
// @Description Validates attached payment, caps and royalties, then mints a new token to the receiver
// @Tags Token
// @Accept json
// @Produce json
// @Param request body registry_service.MintRequest true "Mint request"
// @Success 200 {object} respond.Response{data=respond.MintResponse}
// @Router /api/v1/tokens/mint [post]
func (h *TokenHandler) Mint(c *gin.Context) {
	var req registry_service.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	receipt, err := h.registry.Mint(&req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, &respond.MintResponse{Receipt: receipt})
}

// Transfer transfer a token to a new owner
// @Summary Transfer a token
// @Description Moves a token to the receiver; caller must be the owner or a delegate with a matching approval ID
// @Tags Token
// @Accept json
// @Produce json
// @Param request body registry_service.TransferRequest true "Transfer request"
// @Success 200 {object} respond.Response{data=models.JsonToken}
// @Router /api/v1/tokens/transfer [post]
func (h *TokenHandler) Transfer(c *gin.Context) {
	var req registry_service.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}
	if req.TokenID == "" {
		respond.InvalidParam(c, "token_id is required")
		return
	}

	view, err := h.registry.Transfer(&req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, view)
}

// approvalRequest body of approve/revoke calls
type approvalRequest struct {
	SenderID  string `json:"sender_id"`
	AccountID string `json:"account_id"`
	Memo      string `json:"memo,omitempty"`
}

// Approve grant transfer rights on a token to a delegate
// @Summary Approve a delegate
// @Description Owner grants the delegate a fresh approval ID for this token
// @Tags Approval
// @Accept json
// @Produce json
// @Param tokenId path string true "Token ID"
// @Param request body approvalRequest true "Approval request"
// @Success 200 {object} respond.Response{data=respond.ApprovalResponse}
// @Router /api/v1/tokens/{tokenId}/approve [post]
func (h *TokenHandler) Approve(c *gin.Context) {
	tokenID := c.Param("tokenId")

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	approvalID, err := h.registry.Approve(tokenID, req.AccountID, req.SenderID, req.Memo)
	if err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, &respond.ApprovalResponse{
		TokenID:    tokenID,
		AccountID:  req.AccountID,
		ApprovalID: approvalID,
	})
}

// Revoke withdraw a delegate's approval; no-op if none is held
// @Summary Revoke a delegate
// @Tags Approval
// @Accept json
// @Produce json
// @Param tokenId path string true "Token ID"
// @Param request body approvalRequest true "Revoke request"
// @Success 200 {object} respond.Response
// @Router /api/v1/tokens/{tokenId}/revoke [post]
func (h *TokenHandler) Revoke(c *gin.Context) {
	tokenID := c.Param("tokenId")

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.registry.Revoke(tokenID, req.AccountID, req.SenderID); err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, nil)
}

// RevokeAll clear every approval on a token
// @Summary Revoke all delegates
// @Tags Approval
// @Accept json
// @Produce json
// @Param tokenId path string true "Token ID"
// @Param request body approvalRequest true "Revoke-all request"
// @Success 200 {object} respond.Response
// @Router /api/v1/tokens/{tokenId}/revoke-all [post]
func (h *TokenHandler) RevokeAll(c *gin.Context) {
	tokenID := c.Param("tokenId")

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.registry.RevokeAll(tokenID, req.SenderID); err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, nil)
}

// burnRequest body of a burn call
type burnRequest struct {
	SenderID   string  `json:"sender_id"`
	ApprovalID *uint64 `json:"approval_id,omitempty"`
}

// Burn remove a token from the registry
// @Summary Burn a token
// @Description Owner or an approved delegate permanently removes the token
// @Tags Token
// @Accept json
// @Produce json
// @Param tokenId path string true "Token ID"
// @Param request body burnRequest true "Burn request"
// @Success 200 {object} respond.Response
// @Router /api/v1/tokens/{tokenId}/burn [post]
func (h *TokenHandler) Burn(c *gin.Context) {
	tokenID := c.Param("tokenId")

	var req burnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.registry.Burn(tokenID, req.SenderID, req.ApprovalID); err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, nil)
}

// GetToken read-only token view
// @Summary Get a token
// @Description Returns owner, metadata and the approval snapshot for a token
// @Tags Token
// @Produce json
// @Param tokenId path string true "Token ID"
// @Success 200 {object} respond.Response{data=models.JsonToken}
// @Router /api/v1/tokens/{tokenId} [get]
func (h *TokenHandler) GetToken(c *gin.Context) {
	tokenID := c.Param("tokenId")

	view, err := h.registry.Token(tokenID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, view)
}

// IsApproved report whether a delegate holds a (non-stale) approval
// @Summary Check an approval
// @Tags Approval
// @Produce json
// @Param tokenId path string true "Token ID"
// @Param account_id query string true "Delegate account"
// @Param approval_id query int false "Expected approval ID"
// @Success 200 {object} respond.Response{data=respond.ApprovedResponse}
// @Router /api/v1/tokens/{tokenId}/approved [get]
func (h *TokenHandler) IsApproved(c *gin.Context) {
	tokenID := c.Param("tokenId")
	accountID := c.Query("account_id")
	if accountID == "" {
		respond.InvalidParam(c, "account_id is required")
		return
	}

	var expected *uint64
	if raw := c.Query("approval_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respond.InvalidParam(c, "approval_id must be an unsigned integer")
			return
		}
		expected = &id
	}

	approved, err := h.registry.IsApproved(tokenID, accountID, expected)
	if err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, &respond.ApprovedResponse{Approved: approved})
}

// ListTokens paginated scan over all minted tokens in insertion order
// @Summary List tokens
// @Tags Token
// @Produce json
// @Param cursor query int false "Cursor (from 0)" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} respond.Response{data=respond.TokenListResponse}
// @Router /api/v1/tokens [get]
func (h *TokenHandler) ListTokens(c *gin.Context) {
	cursor, size := parsePage(c)

	tokens, nextCursor, err := h.registry.Tokens(cursor, size)
	if err != nil {
		ledgerError(c, err)
		return
	}

	hasMore := len(tokens) == size
	respond.Success(c, respond.ToTokenListResponse(tokens, nextCursor, hasMore))
}

// TokensForOwner paginated tokens held by one owner
// @Summary List an owner's tokens
// @Tags Owner
// @Produce json
// @Param accountId path string true "Owner account"
// @Param cursor query int false "Cursor (from 0)" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} respond.Response{data=respond.TokenListResponse}
// @Router /api/v1/owners/{accountId}/tokens [get]
func (h *TokenHandler) TokensForOwner(c *gin.Context) {
	ownerID := c.Param("accountId")
	cursor, size := parsePage(c)

	tokens, nextCursor, err := h.registry.TokensForOwner(ownerID, cursor, size)
	if err != nil {
		ledgerError(c, err)
		return
	}

	hasMore := len(tokens) == size
	respond.Success(c, respond.ToTokenListResponse(tokens, nextCursor, hasMore))
}

// SupplyForOwner token count for one owner
// @Summary Owner token supply
// @Tags Owner
// @Produce json
// @Param accountId path string true "Owner account"
// @Success 200 {object} respond.Response{data=respond.SupplyResponse}
// @Router /api/v1/owners/{accountId}/supply [get]
func (h *TokenHandler) SupplyForOwner(c *gin.Context) {
	ownerID := c.Param("accountId")

	supply, err := h.registry.SupplyForOwner(ownerID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	respond.Success(c, &respond.SupplyResponse{Supply: supply})
}

// TotalSupply number of tokens currently in the registry
// @Summary Total supply
// @Tags Token
// @Produce json
// @Success 200 {object} respond.Response{data=respond.SupplyResponse}
// @Router /api/v1/supply [get]
func (h *TokenHandler) TotalSupply(c *gin.Context) {
	respond.Success(c, &respond.SupplyResponse{Supply: h.registry.TotalSupply()})
}

// ContractMetadata contract-level descriptor
// @Summary Contract metadata
// @Tags Contract
// @Produce json
// @Success 200 {object} respond.Response{data=models.ContractMetadata}
// @Router /api/v1/metadata [get]
func (h *TokenHandler) ContractMetadata(c *gin.Context) {
	respond.Success(c, h.registry.Metadata())
}
