// Package services contains the business logic for to-do items: ownership
// checks, id and timestamp assignment, and orchestration of the item store
// and the attachment link provider.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/todovault/internal/common"
	"github.com/dmitrijs2005/todovault/internal/logging"
	"github.com/dmitrijs2005/todovault/internal/server/models"
	"github.com/dmitrijs2005/todovault/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todovault/internal/server/storage"
)

// maxNameLength bounds a to-do item's name.
const maxNameLength = 256

type TodoService struct {
	repo   todos.Repository
	links  storage.LinkProvider
	logger logging.Logger
}

func NewTodoService(repo todos.Repository, links storage.LinkProvider, logger logging.Logger) *TodoService {
	return &TodoService{
		repo:   repo,
		links:  links,
		logger: logger.With("module", "todo_service"),
	}
}

func (s *TodoService) ListTodos(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	s.logger.Info(ctx, "Getting all todos", "user_id", userID)

	return s.repo.ListByOwner(ctx, userID)
}

func (s *TodoService) CreateTodo(ctx context.Context, userID string, req *models.CreateTodoRequest) (*models.TodoItem, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	todoID := uuid.New().String()

	newItem := &models.TodoItem{
		TodoID:        todoID,
		UserID:        userID,
		Name:          req.Name,
		DueDate:       req.DueDate,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Done:          false,
		AttachmentURL: nil,
	}

	s.logger.Info(ctx, "Creating todo", "todo_id", todoID, "user_id", userID)

	if err := s.repo.Create(ctx, newItem); err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	return newItem, nil
}

func (s *TodoService) UpdateTodo(ctx context.Context, userID string, todoID string, update *models.TodoUpdate) error {
	if err := validateName(update.Name); err != nil {
		return err
	}

	s.logger.Info(ctx, "Updating todo", "todo_id", todoID, "user_id", userID)

	if err := s.authorize(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, todoID, update); err != nil {
		return fmt.Errorf("error updating todo: %w", err)
	}

	return nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, userID string, todoID string) error {
	s.logger.Info(ctx, "Deleting todo", "todo_id", todoID, "user_id", userID)

	if err := s.authorize(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, todoID); err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}

	return nil
}

// UpdateAttachmentURL mints the retrieval link and stores it on the item.
// The link is generated before the ownership check; the store is only
// touched after authorization.
func (s *TodoService) UpdateAttachmentURL(ctx context.Context, userID string, todoID string, attachmentID string) error {
	s.logger.Info(ctx, "Generating attachment URL", "attachment_id", attachmentID)

	attachmentURL, err := s.links.RetrievalLink(ctx, attachmentID)
	if err != nil {
		return fmt.Errorf("error generating attachment url: %w", err)
	}

	s.logger.Info(ctx, "Updating todo with attachment URL", "todo_id", todoID, "user_id", userID)

	if err := s.authorize(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.repo.UpdateAttachmentURL(ctx, todoID, attachmentURL); err != nil {
		return fmt.Errorf("error updating attachment url: %w", err)
	}

	return nil
}

// GenerateUploadURL issues an upload link for any attachment id without an
// ownership check. Callers decide whether to gate access.
func (s *TodoService) GenerateUploadURL(ctx context.Context, attachmentID string) (string, error) {
	s.logger.Info(ctx, "Generating upload URL", "attachment_id", attachmentID)

	return s.links.UploadLink(ctx, attachmentID)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty: %w", common.ErrorValidation)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name must not exceed %d characters: %w", maxNameLength, common.ErrorValidation)
	}
	return nil
}

// authorize loads the item and verifies it exists and belongs to userID.
// Ownership mismatch is Forbidden, never NotFound, so "not yours" is not
// confused with "doesn't exist".
func (s *TodoService) authorize(ctx context.Context, userID string, todoID string) error {
	item, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		return err
	}

	if item.UserID != userID {
		s.logger.Warn(ctx, "User is not allowed to access todo", "todo_id", todoID, "user_id", userID)
		return common.ErrorForbidden
	}

	return nil
}
