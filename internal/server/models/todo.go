// Package models defines the data models persisted in the item store.
package models

// TodoItem is a single to-do record owned by exactly one user.
type TodoItem struct {
	// TodoID is the server-generated primary key. Never reassigned.
	TodoID string `json:"todoId" dynamodbav:"todoId"`
	// UserID is the owner. Set at creation and immutable afterwards.
	UserID string `json:"userId" dynamodbav:"userId"`
	// Name is the caller-supplied item text.
	Name string `json:"name" dynamodbav:"name"`
	// DueDate is an optional date string, e.g. "2026-09-30".
	DueDate string `json:"dueDate,omitempty" dynamodbav:"dueDate,omitempty"`
	// CreatedAt is the RFC 3339 creation timestamp. Immutable.
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
	// Done marks the item completed. Defaults to false.
	Done bool `json:"done" dynamodbav:"done"`
	// AttachmentURL is nil until the attachment flow sets it.
	AttachmentURL *string `json:"attachmentUrl" dynamodbav:"attachmentUrl"`
}

// TodoUpdate carries the only fields a caller may change on an existing
// item. An update replaces all three at once.
type TodoUpdate struct {
	Name    string `json:"name" dynamodbav:"name"`
	DueDate string `json:"dueDate" dynamodbav:"dueDate"`
	Done    bool   `json:"done" dynamodbav:"done"`
}

// CreateTodoRequest is the caller's input for a new item; the service
// fills in the id, owner, timestamp and defaults.
type CreateTodoRequest struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate,omitempty"`
}
