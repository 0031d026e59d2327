package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/math"

	"github.com/stakewell-labs/staking-vault/internal/config"
	"github.com/stakewell-labs/staking-vault/internal/token"
)

const (
	// MaxRewardRateBps caps the annual reward rate at 100%.
	MaxRewardRateBps = 10000

	secondsPerYear = 31536000 // 365 days
)

// rewardDenominator folds the bps scale and the annualization into one
// divisor so the accrual formula divides exactly once, after multiplying.
var rewardDenominator = math.NewInt(MaxRewardRateBps * secondsPerYear)

// StakeRecord is one account's live stake. Records are created on deposit,
// never mutated, and deleted when the stake closes; rewards are derived
// from StartTime on read rather than accumulated in place.
type StakeRecord struct {
	Amount    math.Int
	StartTime time.Time
	// RewardDebt is reserved for debt-based accounting and is always zero.
	RewardDebt math.Int
}

// AccountStake pairs an account with its live stake record.
type AccountStake struct {
	Account string
	StakeRecord
}

// StakeInfo is the read-model for a single account's position.
type StakeInfo struct {
	Exists      bool
	Amount      math.Int
	StartTime   time.Time
	Reward      math.Int
	CanWithdraw bool
}

// Withdrawal reports what closing a stake returned to its owner.
type Withdrawal struct {
	Principal math.Int
	// Reward is the amount actually paid after the solvency cap; zero on
	// emergency withdrawal.
	Reward math.Int
	// RewardAccrued is what the accrual formula earned before capping or
	// forfeiture.
	RewardAccrued math.Int
	StartTime     time.Time
}

// Params are the tunable staking parameters.
type Params struct {
	LockDuration  time.Duration
	RewardRateBps uint32
}

// Ledger tracks every live stake and the total principal owed to stakers.
// A single mutex guards the stake map and the total as one unit, so no
// reader can observe a stake inserted without its total update or vice
// versa. All bookkeeping for an operation is committed before any outbound
// token transfer is issued; if a transfer then fails, the bookkeeping is
// restored before the error returns, keeping every operation all-or-nothing.
type Ledger struct {
	mu            sync.Mutex
	stakes        map[string]StakeRecord
	totalStaked   math.Int
	lockDuration  time.Duration
	rewardRateBps uint32

	token        token.TokenInterface
	vaultAccount string
	now          func() time.Time
}

type Option func(*Ledger)

// WithClock overrides the ledger's time source. Tests use it to control
// elapsed time exactly.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func New(cfg *config.LedgerConfig, tokenClient token.TokenInterface, opts ...Option) (*Ledger, error) {
	if err := validateLockDuration(cfg.LockDuration); err != nil {
		return nil, err
	}
	if err := validateRewardRate(cfg.RewardRateBps); err != nil {
		return nil, err
	}

	l := &Ledger{
		stakes:        make(map[string]StakeRecord),
		totalStaked:   math.ZeroInt(),
		lockDuration:  cfg.LockDuration,
		rewardRateBps: cfg.RewardRateBps,
		token:         tokenClient,
		vaultAccount:  cfg.VaultAccount,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Deposit locks amount of the staker's tokens in vault custody and opens
// their stake. An account holds at most one live stake at a time.
func (l *Ledger) Deposit(ctx context.Context, account string, amount math.Int) (*StakeRecord, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.stakes[account]; ok {
		return nil, ErrAlreadyStaked
	}

	// Inbound transfer happens before the record exists, so a rejected
	// transfer leaves no trace.
	if err := l.token.Transfer(ctx, account, l.vaultAccount, amount); err != nil {
		return nil, fmt.Errorf("failed to pull stake from %s: %w: %w", account, ErrTransferFailed, err)
	}

	record := StakeRecord{
		Amount:     amount,
		StartTime:  l.now(),
		RewardDebt: math.ZeroInt(),
	}
	l.stakes[account] = record
	l.totalStaked = l.totalStaked.Add(amount)

	return &record, nil
}

// Withdraw closes a matured stake, returning the principal in full and the
// accrued reward capped by vault solvency: the reward payout may shrink to
// whatever balance the vault holds beyond the principal still owed to other
// stakers, down to zero, but the withdrawal itself never fails for lack of
// reward funding.
func (l *Ledger) Withdraw(ctx context.Context, account string) (*Withdrawal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.stakes[account]
	if !ok {
		return nil, ErrNoActiveStake
	}

	now := l.now()
	elapsed := now.Sub(record.StartTime)
	if elapsed < l.lockDuration {
		return nil, ErrLockNotElapsed
	}

	balance, err := l.token.BalanceOf(ctx, l.vaultAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault balance: %w", err)
	}

	accrued := accrueReward(record.Amount, l.rewardRateBps, elapsed)
	totalStakedAfter := l.totalStaked.Sub(record.Amount)

	// The vault may pay rewards only out of what it holds beyond the
	// principal owed after this withdrawal.
	available := balance.Sub(record.Amount).Sub(totalStakedAfter)
	reward := accrued
	if available.LT(reward) {
		reward = math.MaxInt(available, math.ZeroInt())
	}

	// Commit before transferring so a reentrant call observes the stake as
	// already closed.
	delete(l.stakes, account)
	l.totalStaked = totalStakedAfter

	if err := l.token.Transfer(ctx, l.vaultAccount, account, record.Amount); err != nil {
		l.stakes[account] = record
		l.totalStaked = l.totalStaked.Add(record.Amount)
		return nil, fmt.Errorf("failed to return principal to %s: %w: %w", account, ErrTransferFailed, err)
	}

	if reward.IsPositive() {
		if err := l.token.Transfer(ctx, l.vaultAccount, account, reward); err != nil {
			// The solvency check above makes this unreachable for a
			// well-behaved token. If it happens anyway the principal is
			// already out, so the reward degrades to zero instead of
			// unwinding the withdrawal.
			reward = math.ZeroInt()
		}
	}

	return &Withdrawal{
		Principal:     record.Amount,
		Reward:        reward,
		RewardAccrued: accrued,
		StartTime:     record.StartTime,
	}, nil
}

// EmergencyWithdraw closes a stake at any time, returning only the
// principal. All accrued reward is forfeited and the lock duration is
// ignored.
func (l *Ledger) EmergencyWithdraw(ctx context.Context, account string) (*Withdrawal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.stakes[account]
	if !ok {
		return nil, ErrNoActiveStake
	}

	forfeited := accrueReward(record.Amount, l.rewardRateBps, l.now().Sub(record.StartTime))

	delete(l.stakes, account)
	l.totalStaked = l.totalStaked.Sub(record.Amount)

	if err := l.token.Transfer(ctx, l.vaultAccount, account, record.Amount); err != nil {
		l.stakes[account] = record
		l.totalStaked = l.totalStaked.Add(record.Amount)
		return nil, fmt.Errorf("failed to return principal to %s: %w: %w", account, ErrTransferFailed, err)
	}

	return &Withdrawal{
		Principal:     record.Amount,
		Reward:        math.ZeroInt(),
		RewardAccrued: forfeited,
		StartTime:     record.StartTime,
	}, nil
}

// CalculateReward returns the reward the account would earn if it withdrew
// now, before any solvency capping. Zero if the account has no stake.
func (l *Ledger) CalculateReward(account string) math.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.stakes[account]
	if !ok {
		return math.ZeroInt()
	}
	return accrueReward(record.Amount, l.rewardRateBps, l.now().Sub(record.StartTime))
}

// GetStakeInfo reports an account's position. Accounts without a live stake
// get the zero StakeInfo with Exists false.
func (l *Ledger) GetStakeInfo(account string) StakeInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.stakes[account]
	if !ok {
		return StakeInfo{
			Amount: math.ZeroInt(),
			Reward: math.ZeroInt(),
		}
	}

	elapsed := l.now().Sub(record.StartTime)
	return StakeInfo{
		Exists:      true,
		Amount:      record.Amount,
		StartTime:   record.StartTime,
		Reward:      accrueReward(record.Amount, l.rewardRateBps, elapsed),
		CanWithdraw: elapsed >= l.lockDuration,
	}
}

// SetRewardRate updates the annual reward rate, returning the previous
// rate. The new rate applies to the full lifetime of every live stake on
// its next accrual read.
func (l *Ledger) SetRewardRate(rateBps uint32) (uint32, error) {
	if err := validateRewardRate(rateBps); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.rewardRateBps
	l.rewardRateBps = rateBps
	return prev, nil
}

// SetLockDuration updates the minimum stake duration, returning the
// previous value. Live stakes are measured against the new duration.
func (l *Ledger) SetLockDuration(d time.Duration) (time.Duration, error) {
	if err := validateLockDuration(d); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.lockDuration
	l.lockDuration = d
	return prev, nil
}

// FundRewards pulls amount from the funder into vault custody, growing the
// pool rewards are paid from. The staked total is unaffected.
func (l *Ledger) FundRewards(ctx context.Context, funder string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if err := l.token.Transfer(ctx, funder, l.vaultAccount, amount); err != nil {
		return fmt.Errorf("failed to pull reward funding from %s: %w: %w", funder, ErrTransferFailed, err)
	}
	return nil
}

// WithdrawExcess sends amount of the vault balance to the recipient,
// refusing to dip below the principal owed to stakers.
func (l *Ledger) WithdrawExcess(ctx context.Context, recipient string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.token.BalanceOf(ctx, l.vaultAccount)
	if err != nil {
		return fmt.Errorf("failed to read vault balance: %w", err)
	}
	if balance.Sub(l.totalStaked).LT(amount) {
		return ErrInsufficientExcess
	}

	if err := l.token.Transfer(ctx, l.vaultAccount, recipient, amount); err != nil {
		return fmt.Errorf("failed to send excess to %s: %w: %w", recipient, ErrTransferFailed, err)
	}
	return nil
}

// TotalStaked returns the principal owed to stakers.
func (l *Ledger) TotalStaked() math.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totalStaked
}

// RewardSurplus reports what the vault holds beyond staked principal. A
// negative surplus means the vault cannot even cover principal and needs
// immediate operator attention.
func (l *Ledger) RewardSurplus(ctx context.Context) (math.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.token.BalanceOf(ctx, l.vaultAccount)
	if err != nil {
		return math.Int{}, fmt.Errorf("failed to read vault balance: %w", err)
	}
	return balance.Sub(l.totalStaked), nil
}

func (l *Ledger) Params() Params {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Params{
		LockDuration:  l.lockDuration,
		RewardRateBps: l.rewardRateBps,
	}
}

func (l *Ledger) VaultAccount() string {
	return l.vaultAccount
}

// Snapshot copies every live stake, sorted by account.
func (l *Ledger) Snapshot() []AccountStake {
	l.mu.Lock()
	defer l.mu.Unlock()

	stakes := make([]AccountStake, 0, len(l.stakes))
	for account, record := range l.stakes {
		stakes = append(stakes, AccountStake{Account: account, StakeRecord: record})
	}
	sort.Slice(stakes, func(i, j int) bool {
		return stakes[i].Account < stakes[j].Account
	})
	return stakes
}

// Restore loads previously persisted stakes into an empty ledger and
// rebuilds the staked total from them. Used at startup before the ledger
// serves traffic.
func (l *Ledger) Restore(stakes []AccountStake) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.stakes) != 0 {
		return fmt.Errorf("cannot restore into a ledger with %d live stakes", len(l.stakes))
	}

	total := math.ZeroInt()
	for _, stake := range stakes {
		if stake.Account == "" {
			return fmt.Errorf("stake snapshot contains an empty account")
		}
		if stake.Amount.IsNil() || !stake.Amount.IsPositive() {
			return fmt.Errorf("stake snapshot for %s has non-positive amount", stake.Account)
		}
		if stake.StartTime.IsZero() {
			return fmt.Errorf("stake snapshot for %s has no start time", stake.Account)
		}
		if _, ok := l.stakes[stake.Account]; ok {
			return fmt.Errorf("stake snapshot contains %s twice", stake.Account)
		}

		record := stake.StakeRecord
		if record.RewardDebt.IsNil() {
			record.RewardDebt = math.ZeroInt()
		}
		l.stakes[stake.Account] = record
		total = total.Add(record.Amount)
	}

	l.totalStaked = total
	return nil
}

// accrueReward computes simple interest: amount * rateBps * elapsedSeconds
// / (10000 * 31536000), multiplying before the single floor division so no
// precision is lost. Negative elapsed time yields zero.
func accrueReward(amount math.Int, rateBps uint32, elapsed time.Duration) math.Int {
	elapsedSeconds := int64(elapsed / time.Second)
	if elapsedSeconds <= 0 {
		return math.ZeroInt()
	}
	return amount.
		Mul(math.NewInt(int64(rateBps))).
		Mul(math.NewInt(elapsedSeconds)).
		Quo(rewardDenominator)
}

func validateRewardRate(rateBps uint32) error {
	if rateBps == 0 || rateBps > MaxRewardRateBps {
		return ErrInvalidRate
	}
	return nil
}

func validateLockDuration(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
