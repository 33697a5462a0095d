package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/turnero-app/turnero/libs/auth"
)

const tokenTTL = 12 * time.Hour

// AuthHandler issues admin tokens and guards write and reporting endpoints.
// When no admin password hash is configured the guard is open, which keeps
// local development and tests credential-free.
type AuthHandler struct {
	jwtSecret    string
	adminUser    string
	passwordHash string
	logger       *slog.Logger
}

func NewAuthHandler(jwtSecret, adminUser, passwordHash string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		jwtSecret:    jwtSecret,
		adminUser:    adminUser,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Login serves POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	if h.passwordHash == "" {
		writeError(w, http.StatusNotFound, "login disabled", "no admin account is configured")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body", err.Error())
		return
	}

	if strings.TrimSpace(req.Username) != h.adminUser ||
		bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	now := time.Now()
	expiresAt := now.Add(tokenTTL)
	token, err := auth.SignHS256(auth.Claims{
		Sub:  h.adminUser,
		Role: "admin",
		Iat:  now.Unix(),
		Exp:  expiresAt.Unix(),
	}, h.jwtSecret)
	if err != nil {
		h.logger.Error("token signing failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	writeSuccess(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, "")
}

// RequireAdmin wraps a handler with a bearer-token check. Open when no admin
// account is configured.
func (h *AuthHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.passwordHash == "" {
			next(w, r)
			return
		}

		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token", "")
			return
		}
		claims, err := auth.ParseAndVerifyHS256(strings.TrimSpace(token), h.jwtSecret)
		if err != nil || claims.Role != "admin" {
			writeError(w, http.StatusUnauthorized, "invalid token", "")
			return
		}
		next(w, r)
	}
}
