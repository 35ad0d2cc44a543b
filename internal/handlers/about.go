package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/services"
	"github.com/webfolio/apiserver/internal/store"
	"github.com/webfolio/apiserver/types"
)

const (
	maxAvatarMemory = 8 << 20
	maxAvatarBytes  = 8 << 20
	formFieldAvatar = "avatar"
)

// AboutHandler provides HTTP handlers for the about-me record.
type AboutHandler struct {
	aboutService *services.AboutService
	mediaService *services.MediaService
}

// NewAboutHandler constructs a handler with the provided services.
// mediaService may be nil when no object storage is configured.
func NewAboutHandler(aboutService *services.AboutService, mediaService *services.MediaService) *AboutHandler {
	return &AboutHandler{
		aboutService: aboutService,
		mediaService: mediaService,
	}
}

// AboutRouter registers about-me routes on the given router. The read
// is public; writes and the avatar upload sit behind the auth gate.
func AboutRouter(
	r chi.Router,
	aboutService *services.AboutService,
	mediaService *services.MediaService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewAboutHandler(aboutService, mediaService)

	r.Get("/", handler.GetAbout)
	r.With(authMiddleware).Post("/", handler.CreateAbout)
	r.With(authMiddleware).Put("/{aboutID}", handler.UpdateAbout)
	if mediaService != nil {
		r.With(authMiddleware).Post("/{aboutID}/avatar", handler.UploadAvatar)
	}
}

func (h *AboutHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.aboutService.Get(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "About Me data not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch about me data")
		return
	}
	writeJSON(w, http.StatusOK, about)
}

func (h *AboutHandler) CreateAbout(w http.ResponseWriter, r *http.Request) {
	about, err := decodeAbout(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.aboutService.Create(r.Context(), about)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create about me data")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AboutHandler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "aboutID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	about, err := decodeAbout(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	about.ID = id

	updated, err := h.aboutService.Update(r.Context(), about)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "About Me entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update about me data")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UploadAvatar accepts a multipart image upload, stores it in object
// storage, and updates profile_pic_url on the targeted about row.
func (h *AboutHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "aboutID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	upload, err := parseAvatarFile(r.MultipartForm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.mediaService.UploadAvatar(r.Context(), id, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "About Me entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	writeJSON(w, http.StatusOK, AvatarResponse{ProfilePicURL: url})
}

// AvatarResponse reports the stored avatar's public URL.
type AvatarResponse struct {
	ProfilePicURL string `json:"profile_pic_url"`
}

type avatarUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func decodeAbout(r *http.Request) (types.About, error) {
	var about types.About
	if err := json.NewDecoder(r.Body).Decode(&about); err != nil {
		return types.About{}, errors.New("invalid request body")
	}
	about.Name = strings.TrimSpace(about.Name)
	about.Title = strings.TrimSpace(about.Title)
	if about.Name == "" || about.Title == "" {
		return types.About{}, errors.New("Name and title are required for About Me.")
	}
	return about, nil
}

func parseAvatarFile(form *multipart.Form) (avatarUpload, error) {
	if form == nil {
		return avatarUpload{}, errors.New("missing form data")
	}

	files := form.File[formFieldAvatar]
	if len(files) == 0 {
		return avatarUpload{}, errors.New("avatar file is required")
	}
	if len(files) > 1 {
		return avatarUpload{}, errors.New("only one avatar file is allowed")
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return avatarUpload{}, errors.New("failed to read avatar file")
	}

	data, err := readFileLimited(file, maxAvatarBytes)
	_ = file.Close()
	if err != nil {
		return avatarUpload{}, err
	}

	return avatarUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
