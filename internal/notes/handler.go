package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"notesapi/views/models"
	"notesapi/views/pages"
)

// maxBodyBytes caps note request bodies
const maxBodyBytes = 1 << 20

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the note routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /notes/{$}", h.CreateNote)
	mux.HandleFunc("GET /notes/{$}", h.ListNotes)
	mux.HandleFunc("GET /notes/{id}", h.GetNote)
	mux.HandleFunc("PUT /notes/{id}/{$}", h.UpdateNote)
	mux.HandleFunc("GET /ui", h.NotesPage)

	// The other slash form of each route answers 307 so clients resend the
	// same method and body.
	mux.HandleFunc("POST /notes", redirectSlash)
	mux.HandleFunc("GET /notes", redirectSlash)
	mux.HandleFunc("GET /notes/{id}/{$}", redirectSlash)
	mux.HandleFunc("PUT /notes/{id}", redirectSlash)
}

// --- REST API Handlers ---

// CreateNote handles POST /notes/
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	input, err := DecodeNoteInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, err, 0)
		return
	}

	note, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err, 0)
		return
	}

	h.jsonResponse(w, note, http.StatusCreated)
}

// GetNote handles GET /notes/{id}
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		h.writeError(w, err, 0)
		return
	}

	note, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, id)
		return
	}

	h.jsonResponse(w, note, http.StatusOK)
}

// ListNotes handles GET /notes/
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err, 0)
		return
	}

	h.jsonResponse(w, notes, http.StatusOK)
}

// UpdateNote handles PUT /notes/{id}/
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, idErr := ParseID(r.PathValue("id"))
	input, bodyErr := DecodeNoteInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := joinValidation(idErr, bodyErr); err != nil {
		h.writeError(w, err, 0)
		return
	}

	note, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, err, id)
		return
	}

	h.jsonResponse(w, note, http.StatusOK)
}

// NotesPage handles GET /ui
func (h *Handler) NotesPage(w http.ResponseWriter, r *http.Request) {
	noteList, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("failed to list notes", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.NotesPage(h.notesToViews(noteList)).Render(r.Context(), w); err != nil {
		h.log.Error("failed to render notes page", "error", err)
	}
}

// --- Helper methods ---

// redirectSlash sends the client to the same path with the trailing slash
// added or removed.
func redirectSlash(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if strings.HasSuffix(target, "/") {
		target = strings.TrimSuffix(target, "/")
	} else {
		target += "/"
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// joinValidation merges path and body problems into one response
func joinValidation(errs ...error) error {
	var merged *ValidationError
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		if merged == nil {
			merged = &ValidationError{}
		}
		merged.Fields = append(merged.Fields, verr.Fields...)
	}
	if merged == nil {
		return nil
	}
	return merged
}

// writeError maps service errors to HTTP responses. id is used for the
// not-found message.
func (h *Handler) writeError(w http.ResponseWriter, err error, id int64) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		h.jsonResponse(w, map[string]any{"detail": verr.Fields}, http.StatusUnprocessableEntity)
	case errors.Is(err, ErrNoteNotFound):
		h.jsonError(w, fmt.Sprintf("Note not found for id %d", id), http.StatusNotFound)
	default:
		h.log.Error("note request failed", "error", err)
		h.jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, map[string]string{"detail": message}, status)
}

func (h *Handler) notesToViews(notes []*Note) []models.NoteView {
	views := make([]models.NoteView, len(notes))
	for i, note := range notes {
		views[i] = models.NoteView{
			ID:              note.ID,
			Title:           note.Title,
			Description:     note.Description,
			DescriptionHTML: h.svc.RenderMarkdown(note.Description),
			CreatedAt:       note.CreatedAt,
			UpdatedAt:       note.UpdatedAt,
		}
	}
	return views
}
