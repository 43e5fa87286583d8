// Package fake provides in-memory repository implementations backing unit
// and handler tests. A single mutex stands in for the store's row-level
// isolation: every UnitOfWork.Do holds it for the whole read-check-write
// sequence, and writes are rolled back when the unit returns an error.
package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/dto"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/google/uuid"
)

type txRecord struct {
	seq int64
	t   domain.Transaction
}

// Store holds all in-memory state shared by the fake repositories.
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]domain.User
	accounts     map[uuid.UUID]domain.Account
	transactions map[uuid.UUID]txRecord
	seq          int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.User),
		accounts:     make(map[uuid.UUID]domain.Account),
		transactions: make(map[uuid.UUID]txRecord),
	}
}

func (s *Store) snapshot() *Store {
	clone := NewStore()
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.accounts {
		clone.accounts[k] = v
	}
	for k, v := range s.transactions {
		clone.transactions[k] = v
	}
	clone.seq = s.seq
	return clone
}

func (s *Store) restore(from *Store) {
	s.users = from.users
	s.accounts = from.accounts
	s.transactions = from.transactions
	s.seq = from.seq
}

// UoW implements repository.UnitOfWork over a Store.
type UoW struct {
	store *Store
	inTx  bool
}

// NewUoW creates a UnitOfWork over the given store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do serializes the unit against all others on the same store and rolls
// back on error.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.inTx {
		return fn(u)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	before := u.store.snapshot()
	if err := fn(&UoW{store: u.store, inTx: true}); err != nil {
		u.store.restore(before)
		return err
	}
	return nil
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return &userRepo{store: u.store, locked: u.inTx}, nil
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{store: u.store, locked: u.inTx}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{store: u.store, locked: u.inTx}, nil
}

func (s *Store) lock(alreadyLocked bool) func() {
	if alreadyLocked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type userRepo struct {
	store  *Store
	locked bool
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	defer r.store.lock(r.locked)()
	for _, existing := range r.store.users {
		if existing.Username == u.Username {
			return domain.ErrConflict
		}
	}
	r.store.users[u.ID] = *u
	return nil
}

func (r *userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	defer r.store.lock(r.locked)()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.store.lock(r.locked)()
	for _, u := range r.store.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	defer r.store.lock(r.locked)()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Username != nil {
		for _, existing := range r.store.users {
			if existing.ID != id && existing.Username == *update.Username {
				return domain.ErrConflict
			}
		}
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	u.UpdatedAt = time.Now()
	r.store.users[id] = u
	return nil
}

type accountRepo struct {
	store  *Store
	locked bool
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	defer r.store.lock(r.locked)()
	for _, existing := range r.store.accounts {
		if existing.Name == a.Name {
			return domain.ErrConflict
		}
	}
	r.store.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	defer r.store.lock(r.locked)()
	return r.get(id)
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	defer r.store.lock(r.locked)()
	return r.get(id)
}

func (r *accountRepo) get(id uuid.UUID) (*domain.Account, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *accountRepo) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	defer r.store.lock(r.locked)()
	for _, a := range r.store.accounts {
		if a.Name == name {
			copied := a
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *accountRepo) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	defer r.store.lock(r.locked)()
	var items []domain.Account
	for _, a := range r.store.accounts {
		if a.UserID == userID {
			items = append(items, a)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return pageOf(items, offset, limit), nil
}

func (r *accountRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	defer r.store.lock(r.locked)()
	var count int64
	for _, a := range r.store.accounts {
		if a.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *accountRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	defer r.store.lock(r.locked)()
	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	r.store.accounts[id] = a
	return nil
}

func (r *accountRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error {
	defer r.store.lock(r.locked)()
	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	r.store.accounts[id] = a
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(r.locked)()
	delete(r.store.accounts, id)
	return nil
}

type transactionRepo struct {
	store  *Store
	locked bool
}

func (r *transactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	defer r.store.lock(r.locked)()
	r.store.seq++
	r.store.transactions[t.ID] = txRecord{seq: r.store.seq, t: *t}
	return nil
}

func (r *transactionRepo) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*domain.Transaction, error) {
	defer r.store.lock(r.locked)()
	var items []txRecord
	for _, rec := range r.store.transactions {
		if rec.t.AccountID == accountID {
			items = append(items, rec)
		}
	}
	// Newest first; seq breaks ties for entries created within one tick.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].t.CreatedAt.Equal(items[j].t.CreatedAt) {
			return items[i].seq > items[j].seq
		}
		return items[i].t.CreatedAt.After(items[j].t.CreatedAt)
	})
	result := make([]domain.Transaction, len(items))
	for i, rec := range items {
		result[i] = rec.t
	}
	return pageOf(result, offset, limit), nil
}

func (r *transactionRepo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	defer r.store.lock(r.locked)()
	var count int64
	for _, rec := range r.store.transactions {
		if rec.t.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *transactionRepo) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	defer r.store.lock(r.locked)()
	for id, rec := range r.store.transactions {
		if rec.t.AccountID == accountID {
			delete(r.store.transactions, id)
		}
	}
	return nil
}

func pageOf[T any](items []T, offset, limit int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	result := make([]*T, 0, end-offset)
	for i := offset; i < end; i++ {
		item := items[i]
		result = append(result, &item)
	}
	return result
}
