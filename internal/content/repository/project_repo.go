package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ChristianMLux/cml25-backend/internal/content/domain"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
)

const (
	Collection = "projects"

	relatedLimit = 3
	namespace    = "projects"
)

// Translator resolves catalog keys. *i18n.Catalog implements it.
type Translator interface {
	T(loc locale.Code, ns, key string) string
}

// ProjectRepository reads and writes the projects collection. Read methods
// never return errors: failures are logged and degrade to empty or absent.
type ProjectRepository struct {
	store docstore.Store
	tr    Translator
	log   logging.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(store docstore.Store, tr Translator, log logging.Logger) *ProjectRepository {
	if log == nil {
		log = logging.Nop()
	}
	return &ProjectRepository{store: store, tr: tr, log: log.With("component", "content")}
}

// ListVisible returns every project whose visibility flag is not false, in
// store order.
func (r *ProjectRepository) ListVisible(ctx context.Context, loc locale.Code) []domain.Project {
	all, err := r.load(ctx)
	if err != nil {
		r.log.Error(ctx, "list projects failed", "error", err)
		return []domain.Project{}
	}
	out := make([]domain.Project, 0, len(all))
	for _, p := range all {
		if !p.IsVisible {
			continue
		}
		out = append(out, r.localize(p, loc))
	}
	return out
}

// ListByCategory narrows ListVisible to one category. "all" and "" match
// everything.
func (r *ProjectRepository) ListByCategory(ctx context.Context, category string, loc locale.Code) []domain.Project {
	visible := r.ListVisible(ctx, loc)
	if category == "" || category == domain.CategoryAll {
		return visible
	}
	out := make([]domain.Project, 0, len(visible))
	for _, p := range visible {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// GetByID returns the project stored under id. Missing documents and read
// failures both yield false.
func (r *ProjectRepository) GetByID(ctx context.Context, id string, loc locale.Code) (domain.Project, bool) {
	if strings.TrimSpace(id) == "" {
		return domain.Project{}, false
	}
	doc, err := r.store.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.Project{}, false
	}
	if err != nil {
		r.log.Error(ctx, "get project failed", "id", id, "error", err)
		return domain.Project{}, false
	}
	p, err := domain.FromDocument(doc)
	if err != nil {
		r.log.Warn(ctx, "malformed project document", "id", id, "error", err)
		return domain.Project{}, false
	}
	return r.localize(p, loc), true
}

// GetRelated returns up to three visible projects of the same category,
// excluding excludeID. No ranking beyond store order.
func (r *ProjectRepository) GetRelated(ctx context.Context, category, excludeID string, loc locale.Code) []domain.Project {
	out := make([]domain.Project, 0, relatedLimit)
	for _, p := range r.ListVisible(ctx, loc) {
		if p.Category != category || p.ID == excludeID {
			continue
		}
		out = append(out, p)
		if len(out) == relatedLimit {
			break
		}
	}
	return out
}

// ListAll returns every stored project including hidden ones. Used by the
// admin surface, which needs to see failures.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.load(ctx)
}

// Upsert merge-writes the defined fields of p.
func (r *ProjectRepository) Upsert(ctx context.Context, p domain.ProjectPatch) error {
	if strings.TrimSpace(p.ID) == "" {
		return domain.ErrMissingID
	}
	if err := r.store.Set(ctx, Collection, p.ID, p.Fields(), true); err != nil {
		return fmt.Errorf("upsert project %s: %w", p.ID, err)
	}
	return nil
}

// Publish sanitizes p against the stored document and merge-writes it.
func (r *ProjectRepository) Publish(ctx context.Context, p domain.ProjectPatch) error {
	if strings.TrimSpace(p.ID) == "" {
		return domain.ErrMissingID
	}

	var existing map[string]any
	doc, err := r.store.Get(ctx, Collection, p.ID)
	switch {
	case err == nil:
		existing = doc.Data
	case !errors.Is(err, docstore.ErrNotFound):
		return fmt.Errorf("publish project %s: %w", p.ID, err)
	}

	if err := r.store.Set(ctx, Collection, p.ID, domain.Sanitize(p, existing), true); err != nil {
		return fmt.Errorf("publish project %s: %w", p.ID, err)
	}
	return nil
}

// SaveRaw merge-writes seed data under id.
func (r *ProjectRepository) SaveRaw(ctx context.Context, id string, data map[string]any) error {
	if err := r.store.Set(ctx, Collection, id, data, true); err != nil {
		return fmt.Errorf("save project %s: %w", id, err)
	}
	return nil
}

func (r *ProjectRepository) load(ctx context.Context) ([]domain.Project, error) {
	docs, err := r.store.List(ctx, Collection)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(docs))
	for _, doc := range docs {
		p, err := domain.FromDocument(doc)
		if err != nil {
			r.log.Warn(ctx, "skipping malformed project document", "id", doc.ID, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProjectRepository) localize(p domain.Project, loc locale.Code) domain.Project {
	if r.tr == nil {
		if p.Title == "" {
			p.Title = p.ID
		}
		return p
	}
	if p.Title == "" {
		p.Title = r.tr.T(loc, namespace, "projects."+p.ID+".title")
	}
	if p.Title == "" {
		p.Title = p.ID
	}
	if p.Description == "" {
		p.Description = r.tr.T(loc, namespace, "projects."+p.ID+".description")
	}
	if p.Description == "" {
		p.Description = r.tr.T(loc, namespace, "ui.noDescription")
	}
	return p
}
