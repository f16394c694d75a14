package todos

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todovault/internal/common"
	"github.com/dmitrijs2005/todovault/internal/server/models"
)

// MemoryRepository keeps items in a map. It backs the "memory" configuration
// for local runs and substitutes for remote stores in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.TodoItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.TodoItem)}
}

func (r *MemoryRepository) GetByID(ctx context.Context, todoID string) (*models.TodoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[todoID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &item, nil
}

func (r *MemoryRepository) Exists(ctx context.Context, todoID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[todoID]
	return ok, nil
}

func (r *MemoryRepository) Create(ctx context.Context, item *models.TodoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.TodoID] = *item
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.TodoItem
	for _, item := range r.items {
		if item.UserID == userID {
			item := item
			result = append(result, &item)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, todoID string, update *models.TodoUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// silent when absent, matching the remote store
	item, ok := r.items[todoID]
	if !ok {
		return nil
	}

	item.Name = update.Name
	item.DueDate = update.DueDate
	item.Done = update.Done
	r.items[todoID] = item
	return nil
}

func (r *MemoryRepository) UpdateAttachmentURL(ctx context.Context, todoID string, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[todoID]
	if !ok {
		return nil
	}

	item.AttachmentURL = &url
	r.items[todoID] = item
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, todoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, todoID)
	return nil
}
