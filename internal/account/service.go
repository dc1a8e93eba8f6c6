package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vela-pay/vela_pay/internal/imaging"
	"github.com/vela-pay/vela_pay/internal/notification"
	"github.com/vela-pay/vela_pay/internal/storage"
	"github.com/vela-pay/vela_pay/internal/token"
)

// maxProvisionAttempts bounds how many times the user+wallet insert is retried
// after losing a card number race to a concurrent registration.
const maxProvisionAttempts = 3

const emailTakenMessage = "the email has already been taken"

var allowedImageFormats = []string{"jpeg", "png", "jpg"}

// Service provisions accounts: it validates registration input, creates the
// user and wallet as one atomic unit, assigns a collision-free card number and
// requests an access token for the new account.
type Service struct {
	repo     Repository
	objects  storage.ObjectStore
	issuer   token.Issuer
	notifier notification.Notifier
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds an account provisioning service.
func NewService(repo Repository, objects storage.ObjectStore, issuer token.Issuer, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		objects:  objects,
		issuer:   issuer,
		notifier: notifier,
		logger:   logger,
		validate: NewValidator(),
	}
}

// RegisterInput captures the registration request.
type RegisterInput struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	PIN                  string `json:"pin" validate:"required,len=6,numeric"`
	ProfilePicture       string `json:"profile_picture"`
	KTP                  string `json:"ktp"`
}

// Register provisions a new account. On invalid input it returns a
// *ValidationError and has no side effects. On success exactly one user and
// one wallet exist, the wallet holds a fresh unique card number, and a bearer
// token has been issued for the user.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, token.Token, error) {
	if err := s.validateRegister(ctx, input); err != nil {
		return User{}, token.Token{}, err
	}

	profileRef, err := s.storeImage(ctx, input.ProfilePicture)
	if err != nil {
		return User{}, token.Token{}, &ProvisioningError{Cause: err}
	}
	ktpRef, err := s.storeImage(ctx, input.KTP)
	if err != nil {
		return User{}, token.Token{}, &ProvisioningError{Cause: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, token.Token{}, &ProvisioningError{Cause: err}
	}

	var (
		user    User
		wallet  Wallet
		created bool
	)
	for attempt := 0; attempt < maxProvisionAttempts && !created; attempt++ {
		cardNumber, err := GenerateCardNumber(ctx, s.repo, CardNumberLength)
		if err != nil {
			return User{}, token.Token{}, &ProvisioningError{Cause: err}
		}

		now := time.Now().UTC()
		user = User{
			ID:             uuid.NewString(),
			Name:           input.Name,
			Email:          input.Email,
			Username:       input.Email,
			PasswordHash:   hash,
			ProfilePicture: profileRef,
			KTP:            ktpRef,
			Verified:       ktpRef != "",
			CreatedAt:      now,
		}
		wallet = Wallet{
			ID:         uuid.NewString(),
			UserID:     user.ID,
			Balance:    0,
			PIN:        input.PIN,
			CardNumber: cardNumber,
			CreatedAt:  now,
		}

		switch err := s.repo.CreateAccount(ctx, user, wallet); {
		case err == nil:
			created = true
		case errors.Is(err, ErrCardNumberTaken):
			// Lost the race to a concurrent registration; try a fresh number.
		case errors.Is(err, ErrEmailTaken):
			verr := &ValidationError{}
			verr.Add("email", emailTakenMessage)
			return User{}, token.Token{}, verr
		default:
			return User{}, token.Token{}, &ProvisioningError{Cause: err}
		}
	}
	if !created {
		return User{}, token.Token{}, &ProvisioningError{Cause: ErrCardSpaceExhausted}
	}

	tok, err := s.issuer.Issue(ctx, user.ID)
	if err != nil {
		return User{}, token.Token{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindAccountProvisioned,
			Destination: user.Email,
			Body:        fmt.Sprintf("welcome %s, your wallet is ready", user.Name),
		})
	}
	if s.logger != nil {
		s.logger.Info("account provisioned",
			slog.String("user_id", user.ID),
			slog.String("wallet_id", wallet.ID),
			slog.Bool("verified", user.Verified),
		)
	}

	return user, tok, nil
}

// Wallet returns the wallet owned by the given user.
func (s *Service) Wallet(ctx context.Context, userID string) (Wallet, error) {
	return s.repo.WalletByUserID(ctx, userID)
}

// User returns a user by identifier.
func (s *Service) User(ctx context.Context, id string) (User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// Stats returns store-wide account counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) validateRegister(ctx context.Context, input RegisterInput) error {
	verr := FieldErrors(s.validate.Struct(input))
	if verr == nil {
		verr = &ValidationError{}
	}

	if input.Email != "" && !verr.HasField("email") {
		taken, err := s.repo.EmailTaken(ctx, input.Email)
		if err != nil {
			return &ProvisioningError{Cause: err}
		}
		if taken {
			verr.Add("email", emailTakenMessage)
		}
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func (s *Service) storeImage(ctx context.Context, encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	img, err := imaging.DecodeBase64Image(encoded, allowedImageFormats)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + "." + img.Format
	return s.objects.Put(ctx, name, img.Data)
}
