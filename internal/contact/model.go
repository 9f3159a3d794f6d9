// Package contact accepts contact form submissions and appends them to the
// contacts collection.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ChristianMLux/cml25-backend/internal/docstore"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

const Collection = "contacts"

var ErrRateLimited = errors.New("too many contact requests")

// Submission is the request body of POST /api/contact.
type Submission struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required,min=10,max=500"`
	Locale  string `json:"locale,omitempty"`
}

func (s *Submission) trim() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
}

// Repository appends submissions. Documents are never updated.
type Repository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// Save stores s under a generated id with a server-assigned createdAt.
func (r *Repository) Save(ctx context.Context, s Submission, loc locale.Code) (string, error) {
	id, err := r.store.Add(ctx, Collection, map[string]any{
		"name":      s.Name,
		"email":     s.Email,
		"subject":   s.Subject,
		"message":   s.Message,
		"locale":    string(loc),
		"createdAt": docstore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("save contact: %w", err)
	}
	return id, nil
}
