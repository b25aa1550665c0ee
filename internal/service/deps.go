package service

import (
	"context"
	"time"

	"wallet-ledger/internal/events"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/repository"

	"github.com/rs/zerolog"
)

// Dependencies are the collaborators shared by every service
type Dependencies struct {
	Accounts     repository.AccountStore
	Transactions repository.TransactionLog
	Matches      repository.MatchStore
	DB           repository.DBManager
	Publisher    events.Publisher
	Logger       zerolog.Logger
	Now          func() time.Time
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// accountSet is the working copy of the account collection inside one commit.
// Every mutated account must go through touch so the store persists it.
type accountSet struct {
	accounts []*model.Account
	now      time.Time
}

func loadAccounts(ctx context.Context, store repository.AccountStore, now time.Time) (*accountSet, error) {
	accounts, err := store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &accountSet{accounts: accounts, now: now.UTC()}, nil
}

func (s *accountSet) byID(id string) *model.Account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *accountSet) byPhone(phone string) *model.Account {
	for _, a := range s.accounts {
		if a.Phone == phone {
			return a
		}
	}
	return nil
}

func (s *accountSet) byReferralCode(code string) *model.Account {
	if code == "" {
		return nil
	}
	for _, a := range s.accounts {
		if a.ReferralCode == code {
			return a
		}
	}
	return nil
}

// mustGet returns the account or ErrAccountNotFound
func (s *accountSet) mustGet(id string) (*model.Account, error) {
	a := s.byID(id)
	if a == nil {
		return nil, model.ErrAccountNotFound
	}
	return a, nil
}

func (s *accountSet) add(a *model.Account) {
	a.Version = 1
	a.CreatedAt = s.now
	a.UpdatedAt = s.now
	s.accounts = append(s.accounts, a)
}

func (s *accountSet) touch(a *model.Account) {
	a.Version++
	a.UpdatedAt = s.now
}

func (s *accountSet) save(ctx context.Context, store repository.AccountStore) error {
	return store.ReplaceAll(ctx, s.accounts)
}

type pendingEvent struct {
	subject string
	payload any
}

// outbox collects events during a commit. They are sent only once it succeeds.
type outbox []pendingEvent

func (o *outbox) add(subject string, payload any) {
	*o = append(*o, pendingEvent{subject: subject, payload: payload})
}

// flush sends the events even if ctx has been cancelled since the commit.
func (o outbox) flush(ctx context.Context, pub events.Publisher, logger zerolog.Logger) {
	ctx = context.WithoutCancel(ctx)
	for _, e := range o {
		if err := pub.Publish(ctx, e.subject, e.payload); err != nil {
			logger.Warn().Err(err).Str("subject", e.subject).Msg("failed to publish event")
		}
	}
}
