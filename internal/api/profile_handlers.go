package api

import (
	"encoding/json"
	"net/http"

	"github.com/om-khorwal/NotesFlow/internal/database"
	"github.com/om-khorwal/NotesFlow/internal/models"
)

type UpdateProfileRequest struct {
	DisplayName   *string `json:"display_name"`
	Bio           *string `json:"bio"`
	AvatarURL     *string `json:"avatar_url"`
	CoverPhotoURL *string `json:"cover_photo_url"`
	LinkedinURL   *string `json:"linkedin_url"`
	GithubURL     *string `json:"github_url"`
	InstagramURL  *string `json:"instagram_url"`
	WebsiteURL    *string `json:"website_url"`
}

type ProfileData struct {
	User    *models.User        `json:"user"`
	Profile *models.UserProfile `json:"profile"`
}

// getOrCreateProfile covers users from before profiles were created at
// registration.
func (s *Server) getOrCreateProfile(r *http.Request, userID int64) (*models.UserProfile, error) {
	profile, err := s.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile, err = s.store.CreateProfile(r.Context(), userID)
		if err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// @Summary      Get profile
// @Description  Returns the authenticated user's account and profile data. The profile is created lazily if absent.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse
// @Router       /profile [get]
func (s *Server) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	profile, err := s.getOrCreateProfile(r, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "", ProfileData{User: user, Profile: profile})
}

// @Summary      Update profile
// @Description  Applies only the fields present in the request body.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        updateProfileRequest  body  UpdateProfileRequest  true  "Fields to change"
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse
// @Router       /profile [put]
func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := s.getOrCreateProfile(r, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	params := database.UpdateProfileParams{
		UserID:        user.ID,
		DisplayName:   profile.DisplayName,
		Bio:           profile.Bio,
		AvatarURL:     profile.AvatarURL,
		CoverPhotoURL: profile.CoverPhotoURL,
		LinkedinURL:   profile.LinkedinURL,
		GithubURL:     profile.GithubURL,
		InstagramURL:  profile.InstagramURL,
		WebsiteURL:    profile.WebsiteURL,
	}
	if req.DisplayName != nil {
		params.DisplayName = req.DisplayName
	}
	if req.Bio != nil {
		params.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		params.AvatarURL = req.AvatarURL
	}
	if req.CoverPhotoURL != nil {
		params.CoverPhotoURL = req.CoverPhotoURL
	}
	if req.LinkedinURL != nil {
		params.LinkedinURL = req.LinkedinURL
	}
	if req.GithubURL != nil {
		params.GithubURL = req.GithubURL
	}
	if req.InstagramURL != nil {
		params.InstagramURL = req.InstagramURL
	}
	if req.WebsiteURL != nil {
		params.WebsiteURL = req.WebsiteURL
	}

	updated, err := s.store.UpdateProfile(r.Context(), params)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "Profile updated successfully", ProfileData{User: user, Profile: updated})
}
