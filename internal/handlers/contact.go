package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/services"
	"github.com/webfolio/apiserver/internal/store"
	"github.com/webfolio/apiserver/types"
)

// ContactHandler provides HTTP handlers for contact channels and
// visitor messages.
type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRouter registers contact routes on the given router. Channel
// reads and message submission are public; channel writes are gated.
func ContactRouter(
	r chi.Router,
	contactService *services.ContactService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewContactHandler(contactService)

	r.Get("/", handler.ListContactInfo)
	r.Post("/messages", handler.SubmitMessage)
	r.With(authMiddleware).Post("/", handler.CreateContactInfo)
	r.With(authMiddleware).Put("/{contactID}", handler.UpdateContactInfo)
	r.With(authMiddleware).Delete("/{contactID}", handler.DeleteContactInfo)
}

func (h *ContactHandler) ListContactInfo(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contactService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch contact info")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ContactHandler) CreateContactInfo(w http.ResponseWriter, r *http.Request) {
	entry, err := decodeContactInfo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.contactService.Create(r.Context(), entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create contact info")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "contactID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := decodeContactInfo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry.ID = id

	updated, err := h.contactService.Update(r.Context(), entry)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact info entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update contact info")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ContactHandler) DeleteContactInfo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "contactID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact info entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete contact info")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Msg: "Contact info entry deleted", ID: id})
}

// SubmitMessage accepts a visitor message, stores it, and queues a
// notification when a broker is configured.
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var msg types.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required.")
		return
	}

	created, err := h.contactService.SubmitMessage(r.Context(), msg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func decodeContactInfo(r *http.Request) (types.ContactInfo, error) {
	var entry types.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		return types.ContactInfo{}, errors.New("invalid request body")
	}
	entry.Type = strings.TrimSpace(entry.Type)
	entry.Value = strings.TrimSpace(entry.Value)
	if entry.Type == "" || entry.Value == "" {
		return types.ContactInfo{}, errors.New("Type and value are required for Contact Info.")
	}
	return entry, nil
}
