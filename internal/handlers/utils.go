package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/auth"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// MsgResponse is the error/status payload shape used across the API.
type MsgResponse struct {
	Msg string `json:"msg"`
}

// DeleteResponse confirms a delete and echoes the removed identifier.
type DeleteResponse struct {
	Msg string `json:"msg"`
	ID  int    `json:"id"`
}

func claimsFromContext(ctx context.Context) (auth.Claims, error) {
	claims, ok := ctx.Value(contextClaimsKey).(auth.Claims)
	if !ok || claims.UserID < 1 {
		return auth.Claims{}, errors.New("missing claims")
	}
	return claims, nil
}

func parseID(r *http.Request, param string) (int, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MsgResponse{Msg: message})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
