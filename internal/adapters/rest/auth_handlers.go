package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
	"marketplace-client/internal/core/port/usecases_port"
)

// AuthHandler - хендлеры аутентификации.
type AuthHandler struct {
	loginUC    usecases_port.LoginUserUseCasePort
	registerUC usecases_port.RegisterUserUseCasePort
	verifyUC   usecases_port.VerifyEmailUseCasePort
	resendUC   usecases_port.ResendCodeUseCasePort
	forgotUC   usecases_port.ForgotPasswordUseCasePort
	logoutUC   usecases_port.LogoutUserUseCasePort
}

// NewAuthHandler - конструктор.
func NewAuthHandler(loginUC usecases_port.LoginUserUseCasePort,
	registerUC usecases_port.RegisterUserUseCasePort,
	verifyUC usecases_port.VerifyEmailUseCasePort,
	resendUC usecases_port.ResendCodeUseCasePort,
	forgotUC usecases_port.ForgotPasswordUseCasePort,
	logoutUC usecases_port.LogoutUserUseCasePort) *AuthHandler {
	return &AuthHandler{
		loginUC:    loginUC,
		registerUC: registerUC,
		verifyUC:   verifyUC,
		resendUC:   resendUC,
		forgotUC:   forgotUC,
		logoutUC:   logoutUC,
	}
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing login request", nil)

	session, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			handlerLogger.Warn("Login failed: invalid credentials", nil)
			WriteJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		// Любая другая ошибка - это 500
		handlerLogger.Error("Login use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, SessionResponse{
		Token:    session.Token,
		UserType: session.UserType,
	})
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password != req.PasswordConfirmation {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Password confirmation does not match")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing registration request", nil)

	err := h.registerUC.Execute(r.Context(), port.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		UserType: req.UserType,
	})
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			handlerLogger.Warn("Registration failed validation", nil)
			WriteValidationErrors(w, verrs)
			return
		}
		handlerLogger.Error("Register use case failed with an unexpected error", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Registered. Check your email for the verification code.",
	})
}

// VerifyEmail обрабатывает POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "VerifyEmail"})

	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing email verification", nil)

	session, err := h.verifyUC.Execute(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			handlerLogger.Warn("Email verification failed: invalid code", nil)
			WriteJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		handlerLogger.Error("Verify email use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, SessionResponse{
		Token:    session.Token,
		UserType: session.UserType,
	})
}

// ResendCode обрабатывает POST /api/v1/auth/resend-code
func (h *AuthHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	h.emailOnly(w, r, "ResendCode", h.resendUC.Execute)
}

// ForgotPassword обрабатывает POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.emailOnly(w, r, "ForgotPassword", h.forgotUC.Execute)
}

// emailOnly - общий путь для операций, принимающих только email.
func (h *AuthHandler) emailOnly(w http.ResponseWriter, r *http.Request, name string,
	execute func(ctx context.Context, email string) error) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})

	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, "Email is required")
		return
	}

	logger.Info("Processing request", port.Fields{"email": req.Email})

	if err := execute(r.Context(), req.Email); err != nil {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

// Logout обрабатывает POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Logout"})
	logger.Info("Processing logout", nil)

	if err := h.logoutUC.Execute(r.Context()); err != nil {
		logger.Error("Logout use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
