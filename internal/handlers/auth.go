package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/auth"
	"github.com/webfolio/apiserver/internal/services"
	"github.com/webfolio/apiserver/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// TokenHeader is the request header carrying the auth token. The API
// uses a custom header rather than Authorization: Bearer; clients must
// send the raw token value.
const TokenHeader = "x-auth-token"

// AuthHandler provides the login endpoint and the auth gate middleware.
type AuthHandler struct {
	userService *services.UserService
	secret      []byte
	tokenTTL    time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		secret:      []byte(jwtSecret),
		tokenTTL:    auth.DefaultTokenTTL,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, jwtSecret string) {
	handler := NewAuthHandler(userService, jwtSecret)

	r.Post("/login", handler.Login)
}

// RequireAuth constructs the auth gate middleware for other routers.
// Requests without a valid token are rejected before the handler runs;
// on success the decoded claims are attached to the request context.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.TrimSpace(r.Header.Get(TokenHeader))
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			claims, err := auth.Verify(tokenString, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Login verifies credentials and returns a signed token.
//
// Unknown usernames and wrong passwords produce the same response so
// the two cases cannot be told apart from outside. Neither the
// plaintext password nor the stored digest is ever logged.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		log.Printf("login: user lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Credentials")
		return
	}

	token, err := auth.Mint(user.ID, user.Role, h.secret, h.tokenTTL)
	if err != nil {
		log.Printf("login: token mint failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
