// Package memory is the in-process key-value backend. One Store backs all three
// repositories so a single mutex can make their changes commit together.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"wallet-ledger/internal/model"
	"wallet-ledger/internal/repository"

	"github.com/google/uuid"
)

// Ensure implementation satisfies interfaces at compile time
var (
	_ repository.DBManager      = (*Store)(nil)
	_ repository.AccountStore   = (*AccountRepository)(nil)
	_ repository.TransactionLog = (*TransactionRepository)(nil)
	_ repository.MatchStore     = (*MatchRepository)(nil)
)

type txKey struct{}

type Store struct {
	mu       sync.RWMutex
	accounts []*model.Account
	log      []*model.Transaction
	matches  map[string]*model.Match
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		matches: make(map[string]*model.Match),
		now:     time.Now,
	}
}

// AccountRepository, TransactionRepository and MatchRepository are views over
// one Store and share its lock.
type (
	AccountRepository     struct{ *Store }
	TransactionRepository struct{ *Store }
	MatchRepository       struct{ *Store }
)

func (s *Store) Accounts() *AccountRepository         { return &AccountRepository{s} }
func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s} }
func (s *Store) Matches() *MatchRepository            { return &MatchRepository{s} }

type snapshot struct {
	accounts []*model.Account
	logLen   int
	matches  map[string]*model.Match
}

// WithTransaction holds the store lock for the whole of fn and restores the
// previous state if fn fails.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// read runs fn under the read lock unless ctx already owns the write lock
func (s *Store) read(ctx context.Context, fn func()) {
	if s.inTx(ctx) {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if s.inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) snapshot() snapshot {
	matches := make(map[string]*model.Match, len(s.matches))
	for id, m := range s.matches {
		matches[id] = m.Clone()
	}
	return snapshot{
		accounts: cloneAccounts(s.accounts),
		logLen:   len(s.log),
		matches:  matches,
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	clear(s.log[snap.logLen:])
	s.log = s.log[:snap.logLen]
	s.matches = snap.matches
}

func cloneAccounts(in []*model.Account) []*model.Account {
	out := make([]*model.Account, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]*model.Account, error) {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*model.Account
	s.read(ctx, func() {
		out = cloneAccounts(s.accounts)
	})
	return out, nil
}

// ReplaceAll swaps in the new account set. It rejects a set that drops an
// existing account or repeats an id, phone or referral code.
func (r *AccountRepository) ReplaceAll(ctx context.Context, accounts []*model.Account) error {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(ctx, func() error {
		ids := make(map[string]struct{}, len(accounts))
		phones := make(map[string]struct{}, len(accounts))
		codes := make(map[string]struct{}, len(accounts))
		for _, a := range accounts {
			if _, ok := ids[a.ID]; ok {
				return fmt.Errorf("%w: id %s", model.ErrDuplicateAccount, a.ID)
			}
			if _, ok := phones[a.Phone]; ok {
				return fmt.Errorf("%w: phone %s", model.ErrDuplicateAccount, a.Phone)
			}
			if _, ok := codes[a.ReferralCode]; ok {
				return fmt.Errorf("%w: referral code %s", model.ErrDuplicateAccount, a.ReferralCode)
			}
			ids[a.ID] = struct{}{}
			phones[a.Phone] = struct{}{}
			codes[a.ReferralCode] = struct{}{}
		}
		for _, existing := range s.accounts {
			if _, ok := ids[existing.ID]; !ok {
				return fmt.Errorf("replace accounts: account %s would be removed", existing.ID)
			}
		}

		s.accounts = cloneAccounts(accounts)
		return nil
	})
}

func (r *TransactionRepository) Append(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := *tx
	stored.ID = uuid.NewString()
	stored.Status = model.TxStatusSuccess
	err := s.write(ctx, func() error {
		stored.CreatedAt = s.now().UTC()
		s.log = append(s.log, &stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := stored
	return &out, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*model.Transaction, error) {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*model.Transaction
	s.read(ctx, func() {
		skipped := 0
		for i := len(s.log) - 1; i >= 0; i-- {
			tx := s.log[i]
			if tx.AccountID != accountID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			c := *tx
			out = append(out, &c)
		}
	})
	return out, nil
}

func (r *TransactionRepository) ListAll(ctx context.Context) ([]*model.Transaction, error) {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*model.Transaction
	s.read(ctx, func() {
		out = make([]*model.Transaction, len(s.log))
		for i, tx := range s.log {
			c := *tx
			out[i] = &c
		}
	})
	return out, nil
}

func (r *MatchRepository) Insert(ctx context.Context, match *model.Match) error {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(ctx, func() error {
		if _, ok := s.matches[match.ID]; ok {
			return fmt.Errorf("insert match: id %s already exists", match.ID)
		}
		s.matches[match.ID] = match.Clone()
		return nil
	})
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*model.Match, error) {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *model.Match
	s.read(ctx, func() {
		if m, ok := s.matches[id]; ok {
			out = m.Clone()
		}
	})
	if out == nil {
		return nil, model.ErrMatchNotFound
	}
	return out, nil
}

func (r *MatchRepository) Update(ctx context.Context, match *model.Match) error {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(ctx, func() error {
		if _, ok := s.matches[match.ID]; !ok {
			return model.ErrMatchNotFound
		}
		s.matches[match.ID] = match.Clone()
		return nil
	})
}

// ListAll returns matches ordered by start time
func (r *MatchRepository) ListAll(ctx context.Context) ([]*model.Match, error) {
	s := r.Store
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*model.Match
	s.read(ctx, func() {
		out = make([]*model.Match, 0, len(s.matches))
		for _, m := range s.matches {
			out = append(out, m.Clone())
		}
	})
	slices.SortFunc(out, func(a, b *model.Match) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out, nil
}
