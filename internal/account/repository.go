package account

import "context"

// Repository persists users and wallets.
//
// CreateAccount must be atomic: either both records become visible together or
// neither does. Implementations enforce uniqueness of User.Email and
// Wallet.CardNumber and report violations as ErrEmailTaken and
// ErrCardNumberTaken so the service can translate or retry.
type Repository interface {
	CreateAccount(ctx context.Context, user User, wallet Wallet) error
	FindUserByEmail(ctx context.Context, email string) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	CardNumberTaken(ctx context.Context, cardNumber string) (bool, error)
	WalletByUserID(ctx context.Context, userID string) (Wallet, error)
	Stats(ctx context.Context) (Stats, error)
}
