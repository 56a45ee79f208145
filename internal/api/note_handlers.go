package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/om-khorwal/NotesFlow/internal/database"
	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
)

// shareTokenLength at the nanoid standard 64-character alphabet gives
// just over 256 bits of entropy per token.
const shareTokenLength = 43

func generateShareToken() (string, error) {
	generate, err := nanoid.Standard(shareTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return generate(), nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

type CreateNoteRequest struct {
	Title           string  `json:"title" example:"Groceries"`
	Content         *string `json:"content"`
	BackgroundColor *string `json:"background_color" example:"#FDE68A"`
}

type UpdateNoteRequest struct {
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	BackgroundColor *string `json:"background_color"`
	IsPinned        *bool   `json:"is_pinned"`
}

type ColorUpdateRequest struct {
	Color string `json:"color" example:"#FDE68A"`
}

type ShareLinkRequest struct {
	ExpiresInDays *int `json:"expires_in_days" example:"7"`
}

type ShareLinkData struct {
	ShareToken string     `json:"share_token"`
	ShareURL   string     `json:"share_url"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type NoteListData struct {
	Notes []models.Note `json:"notes"`
	Total int           `json:"total"`
}

// @Summary      List notes
// @Description  Lists the authenticated user's notes, pinned first. Supports a text search over title and content and a pinned filter.
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring to match in title or content"
// @Param        pinned  query     bool    false  "Filter by pinned state"
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse
// @Router       /notes [get]
func (s *Server) ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	params := database.ListNotesParams{UserID: user.ID}
	if search := r.URL.Query().Get("search"); search != "" {
		params.Search = &search
	}
	if pinnedStr := r.URL.Query().Get("pinned"); pinnedStr != "" {
		pinned, err := strconv.ParseBool(pinnedStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'pinned' parameter, must be a boolean")
			return
		}
		params.Pinned = &pinned
	}

	notes, err := s.store.ListNotes(r.Context(), params)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "", NoteListData{Notes: notes, Total: len(notes)})
}

// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        noteId  path  int  true  "Note ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /notes/{noteId} [get]
func (s *Server) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	note, err := s.store.GetNoteByID(r.Context(), noteID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondSuccess(w, "", note)
}

// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createNoteRequest  body  CreateNoteRequest  true  "Note data"
// @Success      200  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /notes [post]
func (s *Server) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []ErrorDetail
	if n := utf8.RuneCountInString(req.Title); n < 1 || n > 255 {
		errs = append(errs, ErrorDetail{Field: "title", Message: "Title must be 1-255 characters"})
	}
	if req.BackgroundColor != nil && !hexColorRegexp.MatchString(*req.BackgroundColor) {
		errs = append(errs, ErrorDetail{Field: "background_color", Message: "Color must be in #RRGGBB format"})
	}
	if len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	color := "#FFFFFF"
	if req.BackgroundColor != nil {
		color = *req.BackgroundColor
	}

	note, err := s.store.CreateNote(r.Context(), database.CreateNoteParams{
		UserID:          user.ID,
		Title:           req.Title,
		Content:         req.Content,
		BackgroundColor: color,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "Note created successfully", note)
}

// @Summary      Update a note
// @Description  Applies only the fields present in the request body.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        noteId             path  int                true  "Note ID"
// @Param        updateNoteRequest  body  UpdateNoteRequest  true  "Fields to change"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /notes/{noteId} [put]
func (s *Server) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []ErrorDetail
	if req.Title != nil {
		if n := utf8.RuneCountInString(*req.Title); n < 1 || n > 255 {
			errs = append(errs, ErrorDetail{Field: "title", Message: "Title must be 1-255 characters"})
		}
	}
	if req.BackgroundColor != nil && !hexColorRegexp.MatchString(*req.BackgroundColor) {
		errs = append(errs, ErrorDetail{Field: "background_color", Message: "Color must be in #RRGGBB format"})
	}
	if len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	note, err := s.store.GetNoteByID(r.Context(), noteID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	params := database.UpdateNoteParams{
		ID:              note.ID,
		UserID:          user.ID,
		Title:           note.Title,
		Content:         note.Content,
		BackgroundColor: note.BackgroundColor,
		IsPinned:        note.IsPinned,
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Content != nil {
		params.Content = req.Content
	}
	if req.BackgroundColor != nil {
		params.BackgroundColor = *req.BackgroundColor
	}
	if req.IsPinned != nil {
		params.IsPinned = *req.IsPinned
	}

	updated, err := s.store.UpdateNote(r.Context(), params)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondSuccess(w, "Note updated successfully", updated)
}

// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        noteId  path  int  true  "Note ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /notes/{noteId} [delete]
func (s *Server) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	deleted, err := s.store.DeleteNote(r.Context(), noteID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondSuccess(w, "Note deleted successfully", nil)
}

// @Summary      Toggle note pin
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        noteId  path  int  true  "Note ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /notes/{noteId}/pin [put]
func (s *Server) ToggleNotePinHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	note, err := s.store.GetNoteByID(r.Context(), noteID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	updated, err := s.store.UpdateNote(r.Context(), database.UpdateNoteParams{
		ID:              note.ID,
		UserID:          user.ID,
		Title:           note.Title,
		Content:         note.Content,
		BackgroundColor: note.BackgroundColor,
		IsPinned:        !note.IsPinned,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	message := "Note unpinned successfully"
	if updated.IsPinned {
		message = "Note pinned successfully"
	}
	respondSuccess(w, message, updated)
}

// @Summary      Set note color
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        noteId              path  int                 true  "Note ID"
// @Param        colorUpdateRequest  body  ColorUpdateRequest  true  "New color"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /notes/{noteId}/color [put]
func (s *Server) SetNoteColorHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	var req ColorUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !hexColorRegexp.MatchString(req.Color) {
		respondValidationErrors(w, []ErrorDetail{
			{Field: "color", Message: "Color must be in #RRGGBB format"},
		})
		return
	}

	note, err := s.store.GetNoteByID(r.Context(), noteID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	updated, err := s.store.UpdateNote(r.Context(), database.UpdateNoteParams{
		ID:              note.ID,
		UserID:          user.ID,
		Title:           note.Title,
		Content:         note.Content,
		BackgroundColor: req.Color,
		IsPinned:        note.IsPinned,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondSuccess(w, "Note color updated successfully", updated)
}

// parseShareRequest reads the optional expiry from the body. An empty body
// means a permanent link.
func (s *Server) parseShareRequest(r *http.Request) (*time.Time, []ErrorDetail, error) {
	var req ShareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}

	if req.ExpiresInDays == nil {
		return nil, nil, nil
	}
	if *req.ExpiresInDays < 1 || *req.ExpiresInDays > 365 {
		return nil, []ErrorDetail{
			{Field: "expires_in_days", Message: "Expiry must be between 1 and 365 days"},
		}, nil
	}

	expiresAt := time.Now().UTC().Add(time.Duration(*req.ExpiresInDays) * 24 * time.Hour)
	return &expiresAt, nil, nil
}

func (s *Server) noteShareURL(token string) string {
	return s.config.AppHost + "/shared.html?token=" + token
}

// Task links carry a type hint so the share page skips the note probe.
func (s *Server) taskShareURL(token string) string {
	return s.config.AppHost + "/shared.html?type=task&token=" + token
}

// @Summary      Create a note share link
// @Description  Generates an unguessable token granting anonymous read access to the note. Re-sharing replaces the previous token.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        noteId            path  int               true   "Note ID"
// @Param        shareLinkRequest  body  ShareLinkRequest  false  "Optional expiry in days (1-365)"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /notes/{noteId}/share [post]
func (s *Server) ShareNoteHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	expiresAt, errs, err := s.parseShareRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	token, err := generateShareToken()
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	note, err := s.store.SetNoteShare(r.Context(), database.SetShareParams{
		ResourceID: noteID,
		UserID:     user.ID,
		Token:      token,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondSuccess(w, "Share link created successfully", ShareLinkData{
		ShareToken: *note.ShareToken,
		ShareURL:   s.noteShareURL(*note.ShareToken),
		ExpiresAt:  note.ShareExpiresAt,
	})
}

// @Summary      Revoke a note share link
// @Description  Clears the token, public flag and expiry in one write. The old token stops resolving immediately.
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        noteId  path  int  true  "Note ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /notes/{noteId}/share [delete]
func (s *Server) RevokeNoteShareHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	noteID, err := parseIDParam(r, "noteId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID format")
		return
	}

	revoked, err := s.store.ClearNoteShare(r.Context(), noteID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if !revoked {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondSuccess(w, "Share link revoked successfully", nil)
}
