package api

import (
	"net/http"
	"time"

	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/go-chi/chi/v5"
)

// SharedNoteData is the anonymous projection of a note. Owner id, share
// token and internal flags are deliberately absent.
type SharedNoteData struct {
	Type            string    `json:"type" example:"note"`
	Title           string    `json:"title"`
	Content         *string   `json:"content"`
	BackgroundColor string    `json:"background_color"`
	CreatedAt       time.Time `json:"created_at"`
}

type SharedTaskData struct {
	Type            string    `json:"type" example:"task"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	BackgroundColor string    `json:"background_color"`
	CreatedAt       time.Time `json:"created_at"`
}

func shareExpired(expiresAt *time.Time) bool {
	return expiresAt != nil && !expiresAt.After(time.Now().UTC())
}

func noteProjection(note *models.Note) SharedNoteData {
	return SharedNoteData{
		Type:            "note",
		Title:           note.Title,
		Content:         note.Content,
		BackgroundColor: note.BackgroundColor,
		CreatedAt:       note.CreatedAt,
	}
}

func taskProjection(task *models.Task) SharedTaskData {
	return SharedTaskData{
		Type:            "task",
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		BackgroundColor: task.BackgroundColor,
		CreatedAt:       task.CreatedAt,
	}
}

// @Summary      View a shared note
// @Description  Anonymous read access by share token. No authentication; the token is the sole credential.
// @Tags         share
// @Produce      json
// @Param        token  path  string  true  "Share token"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse "Unknown or revoked link"
// @Failure      410  {object}  APIResponse "Link has expired"
// @Router       /share/note/{token} [get]
func (s *Server) GetSharedNoteHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	note, err := s.store.GetSharedNoteByToken(r.Context(), token)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Shared note not found or link has been revoked")
		return
	}
	if shareExpired(note.ShareExpiresAt) {
		respondError(w, http.StatusGone, "This share link has expired")
		return
	}

	respondSuccess(w, "", noteProjection(note))
}

// @Summary      View a shared task
// @Tags         share
// @Produce      json
// @Param        token  path  string  true  "Share token"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse "Unknown or revoked link"
// @Failure      410  {object}  APIResponse "Link has expired"
// @Router       /share/task/{token} [get]
func (s *Server) GetSharedTaskHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	task, err := s.store.GetSharedTaskByToken(r.Context(), token)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Shared task not found or link has been revoked")
		return
	}
	if shareExpired(task.ShareExpiresAt) {
		respondError(w, http.StatusGone, "This share link has expired")
		return
	}

	respondSuccess(w, "", taskProjection(task))
}

// @Summary      View a shared item
// @Description  Kind-agnostic resolution kept for older links: probes notes first, then tasks. Tokens are 258-bit random values, so a cross-kind collision is not a practical concern.
// @Tags         share
// @Produce      json
// @Param        token  path  string  true  "Share token"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse "Unknown or revoked link"
// @Failure      410  {object}  APIResponse "Link has expired"
// @Router       /share/{token} [get]
func (s *Server) GetSharedItemHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	note, err := s.store.GetSharedNoteByToken(r.Context(), token)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note != nil {
		if shareExpired(note.ShareExpiresAt) {
			respondError(w, http.StatusGone, "This share link has expired")
			return
		}
		respondSuccess(w, "", noteProjection(note))
		return
	}

	task, err := s.store.GetSharedTaskByToken(r.Context(), token)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task != nil {
		if shareExpired(task.ShareExpiresAt) {
			respondError(w, http.StatusGone, "This share link has expired")
			return
		}
		respondSuccess(w, "", taskProjection(task))
		return
	}

	respondError(w, http.StatusNotFound, "Shared item not found or link has been revoked")
}
