package handler

import (
	"errors"
	"net/http"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/gateway"
	"github.com/belgahub/hub/internal/rest/middleware/session"
	restTypes "github.com/belgahub/hub/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// AuthHandler handles registration, sign-in, and password endpoints.
type AuthHandler struct {
	auth   *gateway.Auth
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *gateway.Auth, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// SignUp registers an account and returns the opened session.
func (h *AuthHandler) SignUp(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.SignUpRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	newSession, err := h.auth.SignUp(req.Context(), gateway.SignUpParams{
		Email:      body.Email,
		Password:   body.Password,
		Name:       body.Name,
		Phone:      body.Phone,
		Company:    body.Company,
		Role:       body.Role,
		City:       body.City,
		State:      body.State,
		PostalCode: body.PostalCode,
	})
	if err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			return writeError(w, http.StatusConflict, "email already registered")
		}

		h.logger.Error("Failed to sign up", zap.Error(err))

		return writeError(w, http.StatusBadRequest, err.Error())
	}

	return bunrouter.JSON(w, newSession)
}

// SignIn verifies credentials and returns a session.
func (h *AuthHandler) SignIn(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.SignInRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	newSession, err := h.auth.SignIn(req.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			return writeError(w, http.StatusUnauthorized, "invalid credentials")
		}

		h.logger.Error("Failed to sign in", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return bunrouter.JSON(w, newSession)
}

// SignOut ends the authenticated session.
func (h *AuthHandler) SignOut(w http.ResponseWriter, req bunrouter.Request) error {
	current := session.FromContext(req.Context())

	if err := h.auth.SignOut(req.Context(), current.Token); err != nil {
		h.logger.Error("Failed to sign out", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// GetSession returns the authenticated session snapshot.
func (h *AuthHandler) GetSession(w http.ResponseWriter, req bunrouter.Request) error {
	return bunrouter.JSON(w, session.FromContext(req.Context()))
}

// ResetPassword starts a password reset for the posted email.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ResetPasswordRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	_, err := h.auth.ResetPassword(req.Context(), body.Email)
	if err != nil {
		if errors.Is(err, types.ErrIdentityNotFound) {
			return writeError(w, http.StatusNotFound, "email not registered")
		}

		h.logger.Error("Failed to start password reset", zap.Error(err))

		return writeError(w, http.StatusInternalServerError, "internal server error")
	}

	w.WriteHeader(http.StatusAccepted)

	return nil
}

// ConfirmReset completes a password reset with the emailed token.
func (h *AuthHandler) ConfirmReset(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.ConfirmResetRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	err := h.auth.ConfirmReset(req.Context(), body.Token, body.NewPassword)
	if err != nil {
		if errors.Is(err, gateway.ErrResetTokenInvalid) {
			return writeError(w, http.StatusUnauthorized, "reset token invalid or expired")
		}

		return writeError(w, http.StatusBadRequest, err.Error())
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// UpdatePassword changes the authenticated user's password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.UpdatePasswordRequest
	if err := decodeJSON(req, &body); err != nil {
		return writeError(w, http.StatusBadRequest, "invalid request body")
	}

	current := session.FromContext(req.Context())

	err := h.auth.UpdatePassword(req.Context(), current.UserID, body.CurrentPassword, body.NewPassword)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			return writeError(w, http.StatusUnauthorized, "current password is incorrect")
		}

		return writeError(w, http.StatusBadRequest, err.Error())
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
