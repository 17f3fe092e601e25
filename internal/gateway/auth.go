package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignUpParams carries everything needed to register an account.
type SignUpParams struct {
	Email      string           `validate:"required,email"`
	Password   string           `validate:"required,min=8"`
	Name       string           `validate:"required,min=2"`
	Phone      string           `validate:"omitempty,min=8"`
	Company    string           `validate:"omitempty"`
	Role       enum.ProfileRole `validate:"required"`
	City       string           `validate:"omitempty"`
	State      string           `validate:"omitempty,max=2"`
	PostalCode string           `validate:"omitempty"`
}

// Auth handles account registration, sign-in, and password management.
type Auth struct {
	db       database.Client
	sessions *SessionCache
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuth creates the auth component.
func NewAuth(db database.Client, sessions *SessionCache, logger *zap.Logger) *Auth {
	return &Auth{
		db:       db,
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("auth"),
	}
}

// SignUp registers a new account and opens a session for it.
// Identity and profile are created in sequence; if the profile insert
// fails the identity is deleted again so no orphaned login remains.
func (a *Auth) SignUp(ctx context.Context, params SignUpParams) (*Session, error) {
	if err := a.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid signup parameters: %w", err)
	}

	if !params.Role.Valid() {
		return nil, fmt.Errorf("invalid signup parameters: unknown role %q", params.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &types.Identity{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: string(hash),
	}

	if err := a.db.Model().Identity().CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	profile := &types.Profile{
		ID:         identity.ID,
		Name:       params.Name,
		Email:      params.Email,
		Phone:      params.Phone,
		Company:    params.Company,
		Role:       params.Role,
		City:       params.City,
		State:      params.State,
		PostalCode: params.PostalCode,
	}

	if err := a.db.Model().Profile().CreateProfile(ctx, profile); err != nil {
		// Roll back the identity so the email can be registered again
		if delErr := a.db.Model().Identity().DeleteIdentity(ctx, identity.ID); delErr != nil {
			a.logger.Error("Failed to roll back identity after profile failure",
				zap.String("identityID", identity.ID.String()),
				zap.Error(delErr))
		}

		return nil, err
	}

	a.logger.Info("Account registered", zap.String("userID", identity.ID.String()))

	return a.sessions.Create(ctx, profile)
}

// SignIn verifies credentials and opens a session.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	identity, err := a.db.Model().Identity().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrIdentityNotFound) {
			return nil, types.ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredentials
	}

	profile, err := a.db.Model().Profile().GetProfile(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	return a.sessions.Create(ctx, profile)
}

// SignOut ends the session for the given token.
func (a *Auth) SignOut(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}

// ResetPassword starts a password reset for the given email and
// returns the single-use token that would be delivered to the user.
// Unknown emails return ErrIdentityNotFound so the form can surface
// the failure.
func (a *Auth) ResetPassword(ctx context.Context, email string) (string, error) {
	identity, err := a.db.Model().Identity().GetIdentityByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := a.sessions.CreateResetToken(ctx, identity.ID)
	if err != nil {
		return "", err
	}

	a.logger.Info("Password reset requested", zap.String("userID", identity.ID.String()))

	return token, nil
}

// ConfirmReset redeems a reset token and sets the new password.
// The token works once; an unknown or expired token returns
// ErrResetTokenInvalid.
func (a *Auth) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	userID, err := a.sessions.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.db.Model().Identity().UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	a.logger.Info("Password reset completed", zap.String("userID", userID.String()))

	return nil
}

// UpdatePassword changes an account's password after verifying the
// current one.
func (a *Auth) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	identity, err := a.db.Model().Identity().GetIdentity(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(currentPassword)); err != nil {
		return types.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.db.Model().Identity().UpdatePassword(ctx, userID, string(hash))
}
