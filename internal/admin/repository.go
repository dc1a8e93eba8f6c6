package admin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrAdminNotFound indicates no admin exists for the given email.
	ErrAdminNotFound = errors.New("admin not found")

	// ErrAdminEmailTaken indicates an admin already holds the email.
	ErrAdminEmailTaken = errors.New("admin email already taken")
)

// Repository persists admin accounts.
type Repository interface {
	Create(ctx context.Context, admin Admin) error
	FindByEmail(ctx context.Context, email string) (Admin, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed admin repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an admin account.
func (r *PostgresRepository) Create(ctx context.Context, admin Admin) error {
	adminID, err := uuid.Parse(admin.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO admin_users (id, name, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		adminID, admin.Name, admin.Email, admin.PasswordHash, admin.CreatedAt.UTC())
	return err
}

// FindByEmail fetches an admin by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, created_at
        FROM admin_users WHERE email = $1`, email)

	var (
		a         Admin
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &a.Name, &a.Email, &a.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrAdminNotFound
		}
		return Admin{}, err
	}
	a.ID = id.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}

type memoryRepository struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

// NewMemoryRepository builds an in-memory admin store for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{admins: make(map[string]Admin)}
}

func (r *memoryRepository) Create(_ context.Context, admin Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[admin.Email]; exists {
		return ErrAdminEmailTaken
	}
	r.admins[admin.Email] = admin
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[email]
	if !ok {
		return Admin{}, ErrAdminNotFound
	}
	return admin, nil
}
