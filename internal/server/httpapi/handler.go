package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/todovault/internal/common"
	"github.com/dmitrijs2005/todovault/internal/server/models"
)

type listTodosResponse struct {
	Items []*models.TodoItem `json:"items"`
}

type generateUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) handleListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	items, err := s.todos.ListTodos(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if items == nil {
		items = []*models.TodoItem{}
	}

	s.respondJSON(w, r, http.StatusOK, listTodosResponse{Items: items})
}

func (s *HTTPServer) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	var req models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.todos.CreateTodo(r.Context(), userID, &req)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, item)
}

func (s *HTTPServer) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	todoID := chi.URLParam(r, "todoId")

	var update models.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.todos.UpdateTodo(r.Context(), userID, todoID, &update); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	todoID := chi.URLParam(r, "todoId")

	if err := s.todos.DeleteTodo(r.Context(), userID, todoID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGenerateUploadURL mints a fresh attachment id, stores the matching
// retrieval link on the item, then returns the upload link.
func (s *HTTPServer) handleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.respondError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	todoID := chi.URLParam(r, "todoId")
	attachmentID := uuid.New().String()

	if err := s.todos.UpdateAttachmentURL(r.Context(), userID, todoID, attachmentID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	uploadURL, err := s.todos.GenerateUploadURL(r.Context(), attachmentID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, generateUploadURLResponse{UploadURL: uploadURL})
}

// respondServiceError maps service conditions to status codes: NotFound and
// Forbidden stay distinguishable instead of collapsing into opaque 500s.
func (s *HTTPServer) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.respondError(w, r, http.StatusNotFound, "todo not found")
	case errors.Is(err, common.ErrorForbidden):
		s.respondError(w, r, http.StatusForbidden, "not allowed")
	case errors.Is(err, common.ErrorValidation):
		s.respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "internal error", "error", err)
		s.respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *HTTPServer) respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(r.Context(), "response encoding error", "error", err)
	}
}

func (s *HTTPServer) respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.respondJSON(w, r, status, errorResponse{Error: msg})
}
