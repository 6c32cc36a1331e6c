package handlers

import (
	"InfoVault/internal/config"
	"InfoVault/internal/middleware"
	"InfoVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер user
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthDTO — ответ register/login. ID пользователя клиент использует
// как соль при выводе ключа, токен — как bearer-credential.
type AuthDTO struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Token string `json:"token"`
}

// Register регистрация нового пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	u, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginTaken):
			respondError(w, http.StatusConflict, "login already taken")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, "login and password are required")
		default:
			h.Logger.Errorw("Register: service error", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	token, err := middleware.BuildJWT(u.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Register: token error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(w, http.StatusCreated, AuthDTO{ID: u.ID, Login: u.Login, Token: token})
}

// Login вход по логину/паролю
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	u, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid login or password")
			return
		}
		h.Logger.Errorw("Login: service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	token, err := middleware.BuildJWT(u.ID, h.Config.AuthSecret)
	if err != nil {
		h.Logger.Errorw("Login: token error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(w, http.StatusOK, AuthDTO{ID: u.ID, Login: u.Login, Token: token})
}
