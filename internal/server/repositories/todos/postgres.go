package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todovault/internal/common"
	"github.com/dmitrijs2005/todovault/internal/dbx"
	"github.com/dmitrijs2005/todovault/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, todoID string) (*models.TodoItem, error) {
	query :=
		`SELECT id, user_id, name, due_date, created_at, done, attachment_url FROM todos
		 WHERE id = $1
		 `

	item := &models.TodoItem{}
	var dueDate, attachmentURL sql.NullString

	err := r.db.QueryRowContext(ctx, query, todoID).Scan(
		&item.TodoID, &item.UserID, &item.Name, &dueDate, &item.CreatedAt, &item.Done, &attachmentURL)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	item.DueDate = dueDate.String
	if attachmentURL.Valid {
		item.AttachmentURL = &attachmentURL.String
	}

	return item, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, todoID string) (bool, error) {
	_, err := r.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create upserts by id to keep the unconditional-put semantics of the
// key-value backend.
func (r *PostgresRepository) Create(ctx context.Context, item *models.TodoItem) error {
	query := `
		INSERT INTO todos (id, user_id, name, due_date, created_at, done, attachment_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			user_id = EXCLUDED.user_id,
			name = EXCLUDED.name,
			due_date = EXCLUDED.due_date,
			created_at = EXCLUDED.created_at,
			done = EXCLUDED.done,
			attachment_url = EXCLUDED.attachment_url;
	`
	_, err := r.db.ExecContext(ctx, query,
		item.TodoID, item.UserID, item.Name, nullString(item.DueDate), item.CreatedAt, item.Done, nullStringPtr(item.AttachmentURL))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	query :=
		`SELECT id, user_id, name, due_date, created_at, done, attachment_url FROM todos
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.TodoItem
	for rows.Next() {
		item := &models.TodoItem{}
		var dueDate, attachmentURL sql.NullString
		if err := rows.Scan(
			&item.TodoID, &item.UserID, &item.Name, &dueDate, &item.CreatedAt, &item.Done, &attachmentURL,
		); err != nil {
			return nil, err
		}
		item.DueDate = dueDate.String
		if attachmentURL.Valid {
			item.AttachmentURL = &attachmentURL.String
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the three mutable fields. A missing id updates nothing and
// returns no error, matching the store's update-without-existence-check
// semantics; callers pre-check.
func (r *PostgresRepository) Update(ctx context.Context, todoID string, update *models.TodoUpdate) error {
	query :=
		`UPDATE todos SET name = $2, due_date = $3, done = $4
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, todoID, update.Name, nullString(update.DueDate), update.Done)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateAttachmentURL(ctx context.Context, todoID string, url string) error {
	query :=
		`UPDATE todos SET attachment_url = $2
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, todoID, url)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, todoID string) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, todoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
