package services

import (
	"time"

	"github.com/stakewell-labs/staking-vault/internal/config"
	"github.com/stakewell-labs/staking-vault/internal/db"
	"github.com/stakewell-labs/staking-vault/internal/events"
	"github.com/stakewell-labs/staking-vault/internal/ledger"
	"github.com/stakewell-labs/staking-vault/internal/token"
)

// Service ties the in-memory staking ledger to its collaborators: the token
// ledger that moves value, MongoDB that journals stake lifecycles, and the
// event emitter that feeds external indexers. The ledger is the single
// source of truth for invariants; the database is its durable mirror.
type Service struct {
	cfg     *config.Config
	db      db.DbInterface
	ledger  *ledger.Ledger
	token   token.TokenInterface
	emitter events.Emitter

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	stakingLedger *ledger.Ledger,
	tokenClient token.TokenInterface,
	emitter events.Emitter,
) *Service {
	return &Service{
		cfg:     cfg,
		db:      db,
		ledger:  stakingLedger,
		token:   tokenClient,
		emitter: emitter,
		now:     time.Now,
	}
}

// Ledger exposes the underlying staking ledger for read-only queries.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}
