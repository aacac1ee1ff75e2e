package registry_service

import (
	"errors"
	"fmt"
	"sync"

	"token-registry-service/conf"
	"token-registry-service/database"
	model "token-registry-service/models"
	"token-registry-service/models/dao"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EventSink receives committed events for fan-out. Sinks run strictly after
// the state they describe is durable; a failing sink never affects the ledger.
type EventSink interface {
	Publish(event *model.EventLog) error
}

// RegistryService the ownership and approval ledger. All mutating operations
// are serialized by the invocation mutex: one operation runs to completion
// against a consistent view before the next begins, and every mutation is
// committed in a single batch together with its event record.
type RegistryService struct {
	mu sync.Mutex

	tokenDAO *dao.TokenDAO

	contract    conf.ContractConfig
	mintCfg     conf.MintConfig
	price       decimal.Decimal
	storageRate decimal.Decimal
	transferFee decimal.Decimal

	// Global counters, mirrored from the counters collection at startup and
	// mutated only under the invocation mutex
	tokenMinted      int64
	tokenMintedUsers int64
	tokenSupply      int64
	mediaIndex       int64

	sinks []EventSink
}

// NewRegistryService create the ledger service from the global config and
// database, restoring counters from the store.
func NewRegistryService() (*RegistryService, error) {
	cfg := conf.Cfg
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}

	price, err := decimal.NewFromString(cfg.Mint.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid mint price %q: %w", cfg.Mint.Price, err)
	}
	storageRate, err := decimal.NewFromString(cfg.Mint.StoragePricePerByte)
	if err != nil {
		return nil, fmt.Errorf("invalid storage price %q: %w", cfg.Mint.StoragePricePerByte, err)
	}
	transferFee, err := decimal.NewFromString(cfg.Transfer.Fee)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer fee %q: %w", cfg.Transfer.Fee, err)
	}

	s := &RegistryService{
		tokenDAO:    dao.NewTokenDAO(),
		contract:    cfg.Contract,
		mintCfg:     cfg.Mint,
		price:       price,
		storageRate: storageRate,
		transferFee: transferFee,
	}

	for name, target := range map[string]*int64{
		database.CounterTokenMinted:      &s.tokenMinted,
		database.CounterTokenMintedUsers: &s.tokenMintedUsers,
		database.CounterTokenSupply:      &s.tokenSupply,
		database.CounterMediaIndex:       &s.mediaIndex,
	} {
		value, err := s.tokenDAO.GetCounter(name)
		if err != nil {
			return nil, fmt.Errorf("failed to restore counter %s: %w", name, err)
		}
		*target = value
	}

	return s, nil
}

// AddEventSink register a post-commit event sink
func (s *RegistryService) AddEventSink(sink EventSink) {
	s.sinks = append(s.sinks, sink)
}

// emit fan a committed event out to the registered sinks. Runs after the
// commit; failures are logged and dropped, never propagated to the caller.
func (s *RegistryService) emit(event *model.EventLog) {
	for _, sink := range s.sinks {
		if err := sink.Publish(event); err != nil {
			log.Error().Err(err).Str("event", event.Event).Int64("seq", event.Seq).
				Msg("event sink publish failed")
		}
	}
}

// TransferRequest caller-facing transfer parameters
type TransferRequest struct {
	SenderID     string  `json:"sender_id"`
	ReceiverID   string  `json:"receiver_id"`
	TokenID      string  `json:"token_id"`
	FromExpected string  `json:"from_expected,omitempty"`
	ApprovalID   *uint64 `json:"approval_id,omitempty"`
	Memo         string  `json:"memo,omitempty"`
	Deposit      string  `json:"deposit"`
}

// Transfer move a token to a new owner. The caller must be the current owner
// or a delegate whose stored approval ID matches the provided one. Approvals
// do not survive a transfer.
func (s *RegistryService) Transfer(req *TransferRequest) (*model.JsonToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidAccountID(req.SenderID) {
		return nil, fmt.Errorf("%w: sender %q", ErrInvalidAccount, req.SenderID)
	}
	if !model.ValidAccountID(req.ReceiverID) {
		return nil, fmt.Errorf("%w: receiver %q", ErrInvalidAccount, req.ReceiverID)
	}

	// Fixed fee, exactly one unit: a replay/spam guard, not a payment
	deposit, err := decimal.NewFromString(req.Deposit)
	if err != nil || !deposit.Equal(s.transferFee) {
		return nil, fmt.Errorf("%w: transfer requires a deposit of exactly %s", ErrInsufficientPayment, s.transferFee)
	}

	token, err := s.getToken(req.TokenID)
	if err != nil {
		return nil, err
	}

	authorizedID, err := authorize(token, req.SenderID, req.ApprovalID)
	if err != nil {
		return nil, err
	}

	if req.FromExpected != "" && req.FromExpected != token.OwnerID {
		return nil, fmt.Errorf("%w: owner is %s", ErrOwnerMismatch, token.OwnerID)
	}
	if req.ReceiverID == token.OwnerID {
		return nil, fmt.Errorf("%w: receiver already owns the token", ErrInvalidAccount)
	}

	oldOwnerID := token.OwnerID
	token.OwnerID = req.ReceiverID
	token.ApprovedAccountIDs = make(map[string]uint64)

	event := model.NewTransferEvent(oldOwnerID, token.OwnerID, authorizedID, []string{token.TokenID}, req.Memo)
	if err := s.tokenDAO.Transfer(token, oldOwnerID, event); err != nil {
		return nil, fmt.Errorf("failed to persist transfer: %w", err)
	}

	log.Info().Str("token_id", token.TokenID).Str("from", oldOwnerID).Str("to", token.OwnerID).
		Msg("token transferred")
	s.emit(event)

	return s.view(token)
}

// Approve grant tokenID transfer rights to delegateID. Returns the issued
// approval ID; re-approving the same delegate issues a fresh ID, so any
// approval ID cached before this call no longer authorizes a transfer.
func (s *RegistryService) Approve(tokenID, delegateID, senderID, memo string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidAccountID(delegateID) {
		return 0, fmt.Errorf("%w: delegate %q", ErrInvalidAccount, delegateID)
	}

	token, err := s.ownedToken(tokenID, senderID)
	if err != nil {
		return 0, err
	}

	approvalID := token.NextApprovalID
	token.ApprovedAccountIDs[delegateID] = approvalID
	token.NextApprovalID++

	event := model.NewApproveEvent(token.OwnerID, delegateID, approvalID, []string{token.TokenID}, memo)
	if err := s.tokenDAO.UpdateApprovals(token, event); err != nil {
		return 0, fmt.Errorf("failed to persist approval: %w", err)
	}

	log.Info().Str("token_id", tokenID).Str("delegate", delegateID).Uint64("approval_id", approvalID).
		Msg("approval granted")
	s.emit(event)

	return approvalID, nil
}

// Revoke withdraw delegateID's approval for tokenID. Revoking a delegate
// that holds no approval is a silent no-op: nothing is written, no event.
func (s *RegistryService) Revoke(tokenID, delegateID, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.ownedToken(tokenID, senderID)
	if err != nil {
		return err
	}

	if _, ok := token.ApprovedAccountIDs[delegateID]; !ok {
		return nil
	}
	delete(token.ApprovedAccountIDs, delegateID)

	event := model.NewRevokeEvent(token.OwnerID, delegateID, []string{token.TokenID})
	if err := s.tokenDAO.UpdateApprovals(token, event); err != nil {
		return fmt.Errorf("failed to persist revoke: %w", err)
	}

	log.Info().Str("token_id", tokenID).Str("delegate", delegateID).Msg("approval revoked")
	s.emit(event)

	return nil
}

// RevokeAll clear every approval on tokenID
func (s *RegistryService) RevokeAll(tokenID, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.ownedToken(tokenID, senderID)
	if err != nil {
		return err
	}

	if len(token.ApprovedAccountIDs) == 0 {
		return nil
	}
	token.ApprovedAccountIDs = make(map[string]uint64)

	event := model.NewRevokeEvent(token.OwnerID, "", []string{token.TokenID})
	if err := s.tokenDAO.UpdateApprovals(token, event); err != nil {
		return fmt.Errorf("failed to persist revoke-all: %w", err)
	}

	log.Info().Str("token_id", tokenID).Msg("all approvals revoked")
	s.emit(event)

	return nil
}

// IsApproved report whether delegateID holds an approval on tokenID. When
// expectedApprovalID is given the stored ID must match exactly, which rejects
// approval IDs that went stale through a re-approve.
func (s *RegistryService) IsApproved(tokenID, delegateID string, expectedApprovalID *uint64) (bool, error) {
	token, err := s.getToken(tokenID)
	if err != nil {
		return false, err
	}

	approvalID, ok := token.ApprovedAccountIDs[delegateID]
	if !ok {
		return false, nil
	}
	if expectedApprovalID != nil {
		return approvalID == *expectedApprovalID, nil
	}
	return true, nil
}

// Burn remove a token from the registry. Owner-gated, or delegate-gated with
// a matching approval ID. Terminal: the ID becomes unknown, all index and
// approval entries go with it.
func (s *RegistryService) Burn(tokenID, senderID string, approvalID *uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.getToken(tokenID)
	if err != nil {
		return err
	}

	authorizedID, err := authorize(token, senderID, approvalID)
	if err != nil {
		return err
	}

	counters := map[string]int64{
		database.CounterTokenSupply: s.tokenSupply - 1,
	}
	event := model.NewBurnEvent(token.OwnerID, authorizedID, []string{token.TokenID})
	if err := s.tokenDAO.Burn(token, event, counters); err != nil {
		return fmt.Errorf("failed to persist burn: %w", err)
	}
	s.tokenSupply--

	log.Info().Str("token_id", tokenID).Str("owner", token.OwnerID).Msg("token burned")
	s.emit(event)

	return nil
}

// Token read-only view of a token: owner, metadata, approval snapshot
func (s *RegistryService) Token(tokenID string) (*model.JsonToken, error) {
	token, err := s.getToken(tokenID)
	if err != nil {
		return nil, err
	}
	return s.view(token)
}

// TokensForOwner paginated views of the tokens held by ownerID. An owner
// without tokens yields an empty page.
func (s *RegistryService) TokensForOwner(ownerID string, cursor int64, size int) ([]*model.JsonToken, int64, error) {
	if !model.ValidAccountID(ownerID) {
		return nil, 0, fmt.Errorf("%w: owner %q", ErrInvalidAccount, ownerID)
	}

	ids, nextCursor, err := s.tokenDAO.ListByOwner(ownerID, cursor, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list owner tokens: %w", err)
	}
	views, err := s.viewsForIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	return views, nextCursor, nil
}

// SupplyForOwner number of tokens held by ownerID
func (s *RegistryService) SupplyForOwner(ownerID string) (int64, error) {
	if !model.ValidAccountID(ownerID) {
		return 0, fmt.Errorf("%w: owner %q", ErrInvalidAccount, ownerID)
	}
	return s.tokenDAO.CountByOwner(ownerID)
}

// TotalSupply number of tokens currently in the registry
func (s *RegistryService) TotalSupply() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenSupply
}

// Tokens paginated views over all minted tokens in insertion order
func (s *RegistryService) Tokens(cursor int64, size int) ([]*model.JsonToken, int64, error) {
	ids, nextCursor, err := s.tokenDAO.ListIDs(cursor, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tokens: %w", err)
	}
	views, err := s.viewsForIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	return views, nextCursor, nil
}

// Events paginated read of the event log, optionally filtered by type
func (s *RegistryService) Events(cursor int64, size int, eventType string) ([]*model.EventLog, int64, error) {
	return s.tokenDAO.ListEvents(cursor, size, eventType)
}

// Metadata contract-level descriptor
func (s *RegistryService) Metadata() *model.ContractMetadata {
	return &model.ContractMetadata{
		Spec:    s.contract.Spec,
		Name:    s.contract.Name,
		Symbol:  s.contract.Symbol,
		Icon:    s.contract.Icon,
		BaseURI: s.contract.BaseURI,
	}
}

func (s *RegistryService) getToken(tokenID string) (*model.Token, error) {
	token, err := s.tokenDAO.Get(tokenID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownToken, tokenID)
		}
		return nil, fmt.Errorf("failed to load token %s: %w", tokenID, err)
	}
	if token.ApprovedAccountIDs == nil {
		token.ApprovedAccountIDs = make(map[string]uint64)
	}
	return token, nil
}

// ownedToken load a token and require senderID to be its owner
func (s *RegistryService) ownedToken(tokenID, senderID string) (*model.Token, error) {
	if !model.ValidAccountID(senderID) {
		return nil, fmt.Errorf("%w: sender %q", ErrInvalidAccount, senderID)
	}
	token, err := s.getToken(tokenID)
	if err != nil {
		return nil, err
	}
	if token.OwnerID != senderID {
		return nil, fmt.Errorf("%w: owner is %s", ErrNotOwner, token.OwnerID)
	}
	return token, nil
}

// authorize check transfer/burn rights: the owner always may; a delegate may
// when it holds an approval and, if an approval ID was provided, the stored
// ID matches it exactly. Returns the delegate account for the event record,
// empty when the owner acted.
func authorize(token *model.Token, senderID string, approvalID *uint64) (string, error) {
	if senderID == token.OwnerID {
		return "", nil
	}
	storedID, ok := token.ApprovedAccountIDs[senderID]
	if !ok {
		return "", fmt.Errorf("%w: %s holds no approval", ErrUnauthorized, senderID)
	}
	if approvalID != nil && storedID != *approvalID {
		return "", fmt.Errorf("%w: approval ID %d is stale", ErrUnauthorized, *approvalID)
	}
	return senderID, nil
}

func (s *RegistryService) view(token *model.Token) (*model.JsonToken, error) {
	meta, err := s.tokenDAO.GetMetadata(token.TokenID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to load metadata for %s: %w", token.TokenID, err)
	}
	return token.View(meta), nil
}

func (s *RegistryService) viewsForIDs(ids []string) ([]*model.JsonToken, error) {
	views := make([]*model.JsonToken, 0, len(ids))
	for _, id := range ids {
		token, err := s.getToken(id)
		if err != nil {
			return nil, err
		}
		view, err := s.view(token)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
