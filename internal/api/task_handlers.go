package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/om-khorwal/NotesFlow/internal/database"
	"github.com/om-khorwal/NotesFlow/internal/models"
)

type CreateTaskRequest struct {
	Title           string     `json:"title" example:"Water the plants"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status" enums:"pending,in_progress,completed"`
	Priority        *string    `json:"priority" enums:"low,medium,high"`
	DueDate         *time.Time `json:"due_date"`
	BackgroundColor *string    `json:"background_color" example:"#FDE68A"`
}

type UpdateTaskRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status" enums:"pending,in_progress,completed"`
	Priority        *string    `json:"priority" enums:"low,medium,high"`
	DueDate         *time.Time `json:"due_date"`
	BackgroundColor *string    `json:"background_color"`
	IsPinned        *bool      `json:"is_pinned"`
}

type TaskListData struct {
	Tasks []models.Task `json:"tasks"`
	Total int           `json:"total"`
}

// @Summary      List tasks
// @Description  Lists the authenticated user's tasks, pinned first. Supports status, priority and pinned filters.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"    Enums(pending, in_progress, completed)
// @Param        priority  query     string  false  "Filter by priority"  Enums(low, medium, high)
// @Param        pinned    query     bool    false  "Filter by pinned state"
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  APIResponse
// @Router       /tasks [get]
func (s *Server) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	params := database.ListTasksParams{UserID: user.ID}
	if status := r.URL.Query().Get("status"); status != "" {
		params.Status = &status
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		params.Priority = &priority
	}
	if pinnedStr := r.URL.Query().Get("pinned"); pinnedStr != "" {
		pinned, err := strconv.ParseBool(pinnedStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'pinned' parameter, must be a boolean")
			return
		}
		params.Pinned = &pinned
	}

	tasks, err := s.store.ListTasks(r.Context(), params)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "", TaskListData{Tasks: tasks, Total: len(tasks)})
}

// @Summary      Get task statistics
// @Description  Counts of the user's tasks grouped by status and priority.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse
// @Router       /tasks/stats [get]
func (s *Server) GetTaskStatsHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := s.store.GetTaskStats(r.Context(), user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "", map[string]interface{}{
		"total": stats.Total,
		"statusCounts": map[string]int64{
			"pending":     stats.Pending,
			"in_progress": stats.InProgress,
			"completed":   stats.Completed,
		},
		"priorityCounts": map[string]int64{
			"low":    stats.Low,
			"medium": stats.Medium,
			"high":   stats.High,
		},
	})
}

// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path  int  true  "Task ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /tasks/{taskId} [get]
func (s *Server) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := s.store.GetTaskByID(r.Context(), taskID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondSuccess(w, "", task)
}

// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createTaskRequest  body  CreateTaskRequest  true  "Task data"
// @Success      200  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /tasks [post]
func (s *Server) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []ErrorDetail
	if n := utf8.RuneCountInString(req.Title); n < 1 || n > 255 {
		errs = append(errs, ErrorDetail{Field: "title", Message: "Title must be 1-255 characters"})
	}
	if req.Status != nil && !validTaskStatus(*req.Status) {
		errs = append(errs, ErrorDetail{Field: "status", Message: "Status must be pending, in_progress or completed"})
	}
	if req.Priority != nil && !validTaskPriority(*req.Priority) {
		errs = append(errs, ErrorDetail{Field: "priority", Message: "Priority must be low, medium or high"})
	}
	if req.BackgroundColor != nil && !hexColorRegexp.MatchString(*req.BackgroundColor) {
		errs = append(errs, ErrorDetail{Field: "background_color", Message: "Color must be in #RRGGBB format"})
	}
	if len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	params := database.CreateTaskParams{
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          models.TaskStatusPending,
		Priority:        models.TaskPriorityMedium,
		DueDate:         req.DueDate,
		BackgroundColor: "#FFFFFF",
	}
	if req.Status != nil {
		params.Status = *req.Status
	}
	if req.Priority != nil {
		params.Priority = *req.Priority
	}
	if req.BackgroundColor != nil {
		params.BackgroundColor = *req.BackgroundColor
	}

	task, err := s.store.CreateTask(r.Context(), params)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}

	respondSuccess(w, "Task created successfully", task)
}

// @Summary      Update a task
// @Description  Applies only the fields present in the request body. Moving the status into completed stamps completed_at, moving it out clears it.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId             path  int                true  "Task ID"
// @Param        updateTaskRequest  body  UpdateTaskRequest  true  "Fields to change"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /tasks/{taskId} [put]
func (s *Server) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req UpdateTaskRequest
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
	if req.Status != nil && !validTaskStatus(*req.Status) {
		errs = append(errs, ErrorDetail{Field: "status", Message: "Status must be pending, in_progress or completed"})
	}
	if req.Priority != nil && !validTaskPriority(*req.Priority) {
		errs = append(errs, ErrorDetail{Field: "priority", Message: "Priority must be low, medium or high"})
	}
	if req.BackgroundColor != nil && !hexColorRegexp.MatchString(*req.BackgroundColor) {
		errs = append(errs, ErrorDetail{Field: "background_color", Message: "Color must be in #RRGGBB format"})
	}
	if len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	task, err := s.store.GetTaskByID(r.Context(), taskID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	params := database.UpdateTaskParams{
		ID:              task.ID,
		UserID:          user.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		CompletedAt:     task.CompletedAt,
		BackgroundColor: task.BackgroundColor,
		IsPinned:        task.IsPinned,
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = req.Description
	}
	if req.Priority != nil {
		params.Priority = *req.Priority
	}
	if req.DueDate != nil {
		params.DueDate = req.DueDate
	}
	if req.BackgroundColor != nil {
		params.BackgroundColor = *req.BackgroundColor
	}
	if req.IsPinned != nil {
		params.IsPinned = *req.IsPinned
	}
	if req.Status != nil {
		params.Status = *req.Status
		// completed_at tracks the transition into completed, not the state.
		if *req.Status == models.TaskStatusCompleted && task.Status != models.TaskStatusCompleted {
			now := time.Now().UTC()
			params.CompletedAt = &now
		} else if *req.Status != models.TaskStatusCompleted {
			params.CompletedAt = nil
		}
	}

	updated, err := s.store.UpdateTask(r.Context(), params)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondSuccess(w, "Task updated successfully", updated)
}

// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path  int  true  "Task ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /tasks/{taskId} [delete]
func (s *Server) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	deleted, err := s.store.DeleteTask(r.Context(), taskID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondSuccess(w, "Task deleted successfully", nil)
}

// @Summary      Toggle task pin
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path  int  true  "Task ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /tasks/{taskId}/pin [put]
func (s *Server) ToggleTaskPinHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := s.store.GetTaskByID(r.Context(), taskID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	updated, err := s.store.UpdateTask(r.Context(), database.UpdateTaskParams{
		ID:              task.ID,
		UserID:          user.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		CompletedAt:     task.CompletedAt,
		BackgroundColor: task.BackgroundColor,
		IsPinned:        !task.IsPinned,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	message := "Task unpinned successfully"
	if updated.IsPinned {
		message = "Task pinned successfully"
	}
	respondSuccess(w, message, updated)
}

// @Summary      Set task color
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId              path  int                 true  "Task ID"
// @Param        colorUpdateRequest  body  ColorUpdateRequest  true  "New color"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /tasks/{taskId}/color [put]
func (s *Server) SetTaskColorHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
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

	task, err := s.store.GetTaskByID(r.Context(), taskID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	updated, err := s.store.UpdateTask(r.Context(), database.UpdateTaskParams{
		ID:              task.ID,
		UserID:          user.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		CompletedAt:     task.CompletedAt,
		BackgroundColor: req.Color,
		IsPinned:        task.IsPinned,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondSuccess(w, "Task color updated successfully", updated)
}

// @Summary      Create a task share link
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId            path  int               true   "Task ID"
// @Param        shareLinkRequest  body  ShareLinkRequest  false  "Optional expiry in days (1-365)"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Failure      422  {object}  APIResponse
// @Router       /tasks/{taskId}/share [post]
func (s *Server) ShareTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
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

	task, err := s.store.SetTaskShare(r.Context(), database.SetShareParams{
		ResourceID: taskID,
		UserID:     user.ID,
		Token:      token,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondSuccess(w, "Share link created successfully", ShareLinkData{
		ShareToken: *task.ShareToken,
		ShareURL:   s.taskShareURL(*task.ShareToken),
		ExpiresAt:  task.ShareExpiresAt,
	})
}

// @Summary      Revoke a task share link
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path  int  true  "Task ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /tasks/{taskId}/share [delete]
func (s *Server) RevokeTaskShareHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	taskID, err := parseIDParam(r, "taskId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	revoked, err := s.store.ClearTaskShare(r.Context(), taskID, user.ID)
	if err != nil {
		s.respondInternalError(w, err)
		return
	}
	if !revoked {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	respondSuccess(w, "Share link revoked successfully", nil)
}
