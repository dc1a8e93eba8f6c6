package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateAccount inserts the user and wallet in a single transaction. Unique
// constraint violations are mapped to ErrEmailTaken / ErrCardNumberTaken.
func (r *PostgresRepository) CreateAccount(ctx context.Context, user User, wallet Wallet) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	walletID, err := uuid.Parse(wallet.ID)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO users (id, name, email, username, password_hash, profile_picture, ktp, verified, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, user.Name, user.Email, user.Username, user.PasswordHash,
		user.ProfilePicture, user.KTP, user.Verified, user.CreatedAt.UTC()); err != nil {
		return mapUniqueViolation(err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO wallets (id, user_id, balance, pin, card_number, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		walletID, userID, wallet.Balance, wallet.PIN, wallet.CardNumber, wallet.CreatedAt.UTC()); err != nil {
		return mapUniqueViolation(err)
	}

	return tx.Commit(ctx)
}

// FindUserByEmail fetches a user by email address.
func (r *PostgresRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, username, password_hash, profile_picture, ktp, verified, created_at
        FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindUserByID fetches a user by identifier.
func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrUserNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, email, username, password_hash, profile_picture, ktp, verified, created_at
        FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// EmailTaken reports whether a user already holds the email address.
func (r *PostgresRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// CardNumberTaken reports whether any wallet already holds the card number.
func (r *PostgresRepository) CardNumberTaken(ctx context.Context, cardNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE card_number = $1)`, cardNumber).Scan(&exists)
	return exists, err
}

// WalletByUserID fetches the wallet owned by the given user.
func (r *PostgresRepository) WalletByUserID(ctx context.Context, userID string) (Wallet, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return Wallet{}, ErrWalletNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, balance, pin, card_number, created_at
        FROM wallets WHERE user_id = $1`, ownerID)

	var (
		w         Wallet
		id, owner uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &owner, &w.Balance, &w.PIN, &w.CardNumber, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrWalletNotFound
		}
		return Wallet{}, err
	}
	w.ID = id.String()
	w.UserID = owner.String()
	w.CreatedAt = createdAt.UTC()
	return w, nil
}

// Stats counts users and wallets for the admin dashboard.
func (r *PostgresRepository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&s.Users); err != nil {
		return Stats{}, err
	}
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM wallets`).Scan(&s.Wallets); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u         User
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.ProfilePicture, &u.KTP, &u.Verified, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	u.ID = id.String()
	u.CreatedAt = createdAt.UTC()
	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrEmailTaken
		case "wallets_card_number_key":
			return ErrCardNumberTaken
		}
	}
	return err
}
