package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/ledger"
)

const defaultParamEventsLimit = 50

// Amounts travel as decimal strings on the wire. They can exceed the range
// JSON numbers represent losslessly, so they are never emitted as numbers.
type depositRequest struct {
	StakerAddress string `json:"stakerAddress"`
	Amount        string `json:"amount"`
}

type stakeResponse struct {
	StakerAddress string    `json:"stakerAddress"`
	Amount        string    `json:"amount"`
	StartTime     time.Time `json:"startTime"`
	Reward        string    `json:"reward"`
	CanWithdraw   bool      `json:"canWithdraw"`
}

type withdrawalResponse struct {
	StakerAddress string    `json:"stakerAddress"`
	Principal     string    `json:"principal"`
	RewardPaid    string    `json:"rewardPaid"`
	RewardAccrued string    `json:"rewardAccrued"`
	StartTime     time.Time `json:"startTime"`
}

type stakeHistoryEntry struct {
	StakerAddress string    `json:"stakerAddress"`
	Amount        string    `json:"amount"`
	RewardPaid    string    `json:"rewardPaid"`
	RewardAccrued string    `json:"rewardAccrued"`
	StartTime     time.Time `json:"startTime"`
	CloseTime     time.Time `json:"closeTime"`
	CloseReason   string    `json:"closeReason"`
}

type vaultOverviewResponse struct {
	TotalStaked         string `json:"totalStaked"`
	ActiveStakes        int    `json:"activeStakes"`
	VaultBalance        string `json:"vaultBalance"`
	RewardSurplus       string `json:"rewardSurplus"`
	RewardRateBps       uint32 `json:"rewardRateBps"`
	LockDurationSeconds int64  `json:"lockDurationSeconds"`
}

type setRewardRateRequest struct {
	Actor   string `json:"actor"`
	RateBps uint32 `json:"rateBps"`
}

type setLockDurationRequest struct {
	Actor           string `json:"actor"`
	DurationSeconds int64  `json:"durationSeconds"`
}

type fundRewardsRequest struct {
	Funder string `json:"funder"`
	Amount string `json:"amount"`
}

type withdrawExcessRequest struct {
	Actor     string `json:"actor"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type paramEventResponse struct {
	EventType string    `json:"eventType"`
	OldValue  string    `json:"oldValue,omitempty"`
	NewValue  string    `json:"newValue"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return
	}
	if req.StakerAddress == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "stakerAddress is required")
		return
	}
	amount, ok := math.NewIntFromString(req.Amount)
	if !ok {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "amount must be a decimal integer string")
		return
	}

	record, err := s.service.Deposit(r.Context(), req.StakerAddress, amount)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, stakeResponse{
		StakerAddress: req.StakerAddress,
		Amount:        record.Amount.String(),
		StartTime:     record.StartTime,
		Reward:        "0",
		CanWithdraw:   false,
	})
}

func (s *Server) handleGetStake(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")

	info := s.service.StakeInfo(account)
	if !info.Exists {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no active stake for account")
		return
	}

	writeJSON(w, http.StatusOK, stakeResponse{
		StakerAddress: account,
		Amount:        info.Amount.String(),
		StartTime:     info.StartTime,
		Reward:        info.Reward.String(),
		CanWithdraw:   info.CanWithdraw,
	})
}

func (s *Server) handleGetStakeHistory(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")

	docs, err := s.service.StakeHistory(r.Context(), account)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	entries := make([]stakeHistoryEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, stakeHistoryEntry{
			StakerAddress: doc.StakerAddress,
			Amount:        doc.Amount,
			RewardPaid:    doc.RewardPaid,
			RewardAccrued: doc.RewardAccrued,
			StartTime:     doc.StartTime,
			CloseTime:     doc.CloseTime,
			CloseReason:   doc.CloseReason.String(),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")

	withdrawal, err := s.service.Withdraw(r.Context(), account)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, withdrawalResponse{
		StakerAddress: account,
		Principal:     withdrawal.Principal.String(),
		RewardPaid:    withdrawal.Reward.String(),
		RewardAccrued: withdrawal.RewardAccrued.String(),
		StartTime:     withdrawal.StartTime,
	})
}

func (s *Server) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")

	withdrawal, err := s.service.EmergencyWithdraw(r.Context(), account)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, withdrawalResponse{
		StakerAddress: account,
		Principal:     withdrawal.Principal.String(),
		RewardPaid:    withdrawal.Reward.String(),
		RewardAccrued: withdrawal.RewardAccrued.String(),
		StartTime:     withdrawal.StartTime,
	})
}

func (s *Server) handleVaultOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.service.Overview(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, vaultOverviewResponse{
		TotalStaked:         overview.TotalStaked.String(),
		ActiveStakes:        overview.ActiveStakes,
		VaultBalance:        overview.VaultBalance.String(),
		RewardSurplus:       overview.RewardSurplus.String(),
		RewardRateBps:       overview.Params.RewardRateBps,
		LockDurationSeconds: int64(overview.Params.LockDuration.Seconds()),
	})
}

func (s *Server) handleSetRewardRate(w http.ResponseWriter, r *http.Request) {
	var req setRewardRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return
	}

	if err := s.service.SetRewardRate(r.Context(), req.Actor, req.RateBps); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetLockDuration(w http.ResponseWriter, r *http.Request) {
	var req setLockDurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return
	}

	d := time.Duration(req.DurationSeconds) * time.Second
	if err := s.service.SetLockDuration(r.Context(), req.Actor, d); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetParamEvents(w http.ResponseWriter, r *http.Request) {
	docs, err := s.service.ParamEvents(r.Context(), defaultParamEventsLimit)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	entries := make([]paramEventResponse, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, paramEventResponse{
			EventType: doc.EventType,
			OldValue:  doc.OldValue,
			NewValue:  doc.NewValue,
			Actor:     doc.Actor,
			Timestamp: doc.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleFundRewards(w http.ResponseWriter, r *http.Request) {
	var req fundRewardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return
	}
	amount, ok := math.NewIntFromString(req.Amount)
	if !ok {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "amount must be a decimal integer string")
		return
	}

	if err := s.service.FundRewards(r.Context(), req.Funder, amount); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWithdrawExcess(w http.ResponseWriter, r *http.Request) {
	var req withdrawExcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return
	}
	amount, ok := math.NewIntFromString(req.Amount)
	if !ok {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "amount must be a decimal integer string")
		return
	}

	if err := s.service.WithdrawExcess(r.Context(), req.Actor, req.Recipient, amount); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	writeJSON(w, statusCode, errorResponse{
		ErrorCode: errorCode,
		Message:   message,
	})
}

// writeLedgerError maps ledger errors onto HTTP statuses. Validation
// failures are the caller's fault, state conflicts are 409, and a stake
// still inside its lock window gets 423 Locked.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidRate),
		errors.Is(err, ledger.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.Is(err, ledger.ErrNoActiveStake):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ledger.ErrLockNotElapsed):
		writeError(w, http.StatusLocked, "LOCK_NOT_ELAPSED", err.Error())
	case errors.Is(err, ledger.ErrAlreadyStaked),
		errors.Is(err, ledger.ErrInsufficientExcess),
		errors.Is(err, ledger.ErrTransferFailed):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	default:
		writeInternalError(w, r, err)
	}
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Ctx(r.Context()).Error().Err(err).Msg("Internal error handling request")
	writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
}
