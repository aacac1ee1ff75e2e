package registry_service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"token-registry-service/database"
	model "token-registry-service/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Royalty basis points across a token's share map never exceed this
const maxRoyaltyBasisPoints = 10000

// MintRequest caller-facing mint parameters. ReceiverID defaults to the
// sender; TokenID may only be set when the drop permits caller-chosen IDs.
type MintRequest struct {
	SenderID   string            `json:"sender_id"`
	ReceiverID string            `json:"receiver_id,omitempty"`
	TokenID    string            `json:"token_id,omitempty"`
	Memo       string            `json:"memo,omitempty"`
	Deposit    string            `json:"deposit"`
	Royalty    map[string]uint16 `json:"royalty,omitempty"`
}

// MintReceipt outcome of a successful mint, including the payment breakdown
type MintReceipt struct {
	ReceiptID    string           `json:"receipt_id"`
	Token        *model.JsonToken `json:"token"`
	PriceCharged string           `json:"price_charged"`
	StorageCost  string           `json:"storage_cost"`
	Refund       string           `json:"refund"`
}

// Mint create a new token under the configured drop. The public entry point
// validates payment, caps and the royalty map, then performs the privileged
// mutation through mintAsAuthority in the same invocation, so a mint either
// happens in full or not at all.
func (s *RegistryService) Mint(req *MintRequest) (*MintReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidAccountID(req.SenderID) {
		return nil, fmt.Errorf("%w: sender %q", ErrInvalidAccount, req.SenderID)
	}
	receiverID := req.ReceiverID
	if receiverID == "" {
		receiverID = req.SenderID
	}
	if !model.ValidAccountID(receiverID) {
		return nil, fmt.Errorf("%w: receiver %q", ErrInvalidAccount, receiverID)
	}

	deposit, err := decimal.NewFromString(req.Deposit)
	if err != nil || deposit.IsNegative() {
		return nil, fmt.Errorf("%w: malformed deposit %q", ErrInsufficientPayment, req.Deposit)
	}
	if deposit.LessThan(s.price) {
		return nil, fmt.Errorf("%w: deposit %s below mint price %s", ErrInsufficientPayment, deposit, s.price)
	}

	externalCaller := req.SenderID != s.contract.AccountID
	if err := s.checkMintCaps(externalCaller); err != nil {
		return nil, err
	}

	if err := s.validateRoyalty(req.Royalty); err != nil {
		return nil, err
	}

	if req.TokenID != "" && !s.mintCfg.AllowCallerTokenIDs {
		return nil, fmt.Errorf("%w: caller-chosen token IDs are disabled", ErrInvalidTokenID)
	}

	return s.mintAsAuthority(receiverID, req.TokenID, req.Royalty, req.Memo, deposit, externalCaller)
}

// mintAsAuthority the privileged inner mint. Unexported: only the validated
// public entry point reaches it, which replaces the original's self-call
// indirection and closes the gap between validation and mutation. Caps are
// still re-checked here; the entry conditions are not assumed.
func (s *RegistryService) mintAsAuthority(receiverID, tokenID string, royalty map[string]uint16, memo string, deposit decimal.Decimal, externalCaller bool) (*MintReceipt, error) {
	if err := s.checkMintCaps(externalCaller); err != nil {
		return nil, err
	}

	seq := s.tokenMinted + 1
	if tokenID == "" {
		tokenID = strconv.FormatInt(seq, 10)
	}

	mediaIndex := s.mediaIndex
	if len(s.mintCfg.Media) > 0 {
		mediaIndex = mediaIndex % int64(len(s.mintCfg.Media))
	}
	meta := s.templateMetadata(tokenID, mediaIndex)

	token := &model.Token{
		TokenID:            tokenID,
		OwnerID:            receiverID,
		ApprovedAccountIDs: make(map[string]uint64),
		NextApprovalID:     0,
		Royalty:            royalty,
		Seq:                seq,
	}

	// Storage is accounted and charged before any refund is computed
	storageCost, err := s.storageCost(token, meta)
	if err != nil {
		return nil, err
	}
	totalCharge := s.price.Add(storageCost)
	if deposit.LessThan(totalCharge) {
		return nil, fmt.Errorf("%w: deposit %s below price plus storage cost %s", ErrInsufficientPayment, deposit, totalCharge)
	}
	refund := deposit.Sub(totalCharge)

	counters := map[string]int64{
		database.CounterTokenMinted: seq,
		database.CounterTokenSupply: s.tokenSupply + 1,
		database.CounterMediaIndex:  mediaIndex + 1,
	}
	if externalCaller {
		counters[database.CounterTokenMintedUsers] = s.tokenMintedUsers + 1
	}

	event := model.NewMintEvent(receiverID, []string{tokenID}, memo)
	if err := s.tokenDAO.Create(token, meta, event, counters); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTokenID, tokenID)
		}
		return nil, fmt.Errorf("failed to persist mint: %w", err)
	}

	s.tokenMinted = seq
	s.tokenSupply++
	s.mediaIndex = mediaIndex + 1
	if externalCaller {
		s.tokenMintedUsers++
	}

	log.Info().Str("token_id", tokenID).Str("owner", receiverID).
		Str("storage_cost", storageCost.String()).Str("refund", refund.String()).
		Msg("token minted")
	s.emit(event)

	view, err := s.view(token)
	if err != nil {
		return nil, err
	}
	return &MintReceipt{
		ReceiptID:    uuid.NewString(),
		Token:        view,
		PriceCharged: s.price.String(),
		StorageCost:  storageCost.String(),
		Refund:       refund.String(),
	}, nil
}

func (s *RegistryService) checkMintCaps(externalCaller bool) error {
	if s.tokenMinted >= s.mintCfg.MaxMint {
		return fmt.Errorf("%w: max token quantity is %d", ErrCapExceeded, s.mintCfg.MaxMint)
	}
	if externalCaller && s.tokenMintedUsers >= s.mintCfg.MaxMintUsers {
		return fmt.Errorf("%w: max tokens on sale is %d", ErrCapExceeded, s.mintCfg.MaxMintUsers)
	}
	return nil
}

func (s *RegistryService) validateRoyalty(royalty map[string]uint16) error {
	if len(royalty) == 0 {
		return nil
	}
	if len(royalty) > s.mintCfg.MaxRoyaltyShares {
		return fmt.Errorf("%w: at most %d shares", ErrTooManyRoyaltyShares, s.mintCfg.MaxRoyaltyShares)
	}
	var total int
	for account, points := range royalty {
		if !model.ValidAccountID(account) {
			return fmt.Errorf("%w: royalty account %q", ErrInvalidAccount, account)
		}
		total += int(points)
	}
	if total > maxRoyaltyBasisPoints {
		return fmt.Errorf("%w: total is %d", ErrInvalidRoyaltyTotal, total)
	}
	return nil
}

// templateMetadata build per-token metadata from the drop template and the
// rotating media index
func (s *RegistryService) templateMetadata(tokenID string, mediaIndex int64) *model.TokenMetadata {
	meta := &model.TokenMetadata{
		Title:       fmt.Sprintf(s.mintCfg.TitleTemplate, tokenID),
		Description: s.mintCfg.Description,
		Copies:      s.mintCfg.Copies,
		IssuedAt:    strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	if len(s.mintCfg.Media) > 0 {
		meta.Media = s.mintCfg.Media[mediaIndex]
		if int(mediaIndex) < len(s.mintCfg.MediaHashes) {
			meta.MediaHash = s.mintCfg.MediaHashes[mediaIndex]
		}
	}
	return meta
}

// storageCost marginal storage charge for the records a mint persists
func (s *RegistryService) storageCost(token *model.Token, meta *model.TokenMetadata) (decimal.Decimal, error) {
	tokenData, err := json.Marshal(token)
	if err != nil {
		return decimal.Zero, err
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return decimal.Zero, err
	}
	// Token and metadata records plus the ownership and scan index entries
	bytes := int64(len(tokenData)+len(metaData)) + int64(3*len(token.TokenID)) + int64(len(token.OwnerID))
	return s.storageRate.Mul(decimal.NewFromInt(bytes)), nil
}
