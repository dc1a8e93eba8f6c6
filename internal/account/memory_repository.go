package account

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu          sync.RWMutex
	usersByID   map[string]User
	userIDs     map[string]string // email -> user id
	wallets     map[string]Wallet // user id -> wallet
	cardNumbers map[string]struct{}
}

// NewMemoryRepository builds an in-memory account store for tests. It enforces
// the same email and card number uniqueness as the Postgres schema.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		usersByID:   make(map[string]User),
		userIDs:     make(map[string]string),
		wallets:     make(map[string]Wallet),
		cardNumbers: make(map[string]struct{}),
	}
}

func (r *memoryRepository) CreateAccount(_ context.Context, user User, wallet Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.userIDs[user.Email]; exists {
		return ErrEmailTaken
	}
	if _, exists := r.cardNumbers[wallet.CardNumber]; exists {
		return ErrCardNumberTaken
	}
	r.usersByID[user.ID] = user
	r.userIDs[user.Email] = user.ID
	r.wallets[user.ID] = wallet
	r.cardNumbers[wallet.CardNumber] = struct{}{}
	return nil
}

func (r *memoryRepository) FindUserByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.userIDs[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return r.usersByID[id], nil
}

func (r *memoryRepository) FindUserByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.usersByID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *memoryRepository) EmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.userIDs[email]
	return ok, nil
}

func (r *memoryRepository) CardNumberTaken(_ context.Context, cardNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cardNumbers[cardNumber]
	return ok, nil
}

func (r *memoryRepository) WalletByUserID(_ context.Context, userID string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.wallets[userID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	return wallet, nil
}

func (r *memoryRepository) Stats(_ context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{Users: int64(len(r.usersByID)), Wallets: int64(len(r.wallets))}, nil
}
