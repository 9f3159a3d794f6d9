package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ChristianMLux/cml25-backend/internal/admin/domain"
	"github.com/ChristianMLux/cml25-backend/internal/blob"
	content "github.com/ChristianMLux/cml25-backend/internal/content/domain"
	"github.com/ChristianMLux/cml25-backend/internal/platform/logging"
	rsdomain "github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
	rsservice "github.com/ChristianMLux/cml25-backend/internal/reposync/service"
)

const maxNotifications = 20

var ErrSyncInProgress = errors.New("a sync is already running")

// ProjectStore is the write side of the content repository.
// *repository.ProjectRepository implements it.
type ProjectStore interface {
	ListAll(ctx context.Context) ([]content.Project, error)
	Publish(ctx context.Context, p content.ProjectPatch) error
	SaveRaw(ctx context.Context, id string, data map[string]any) error
}

// Syncer runs the repository sync. *rsservice.Runner implements it.
type Syncer interface {
	Sync(ctx context.Context, trigger string) (*rsdomain.Run, []rsdomain.Candidate, error)
}

type Deps struct {
	Store    ProjectStore
	Syncer   Syncer
	Uploader blob.Uploader
	Seeds    func() []content.Project
	Log      logging.Logger
}

// MigrateResult reports a bulk migration. Items that failed are not
// rolled back.
type MigrateResult struct {
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`
}

// Session is one operator's working set: the project list, at most one
// draft under edit, and pending notifications. Outward calls run without
// holding the lock; their results are applied afterwards, so the list is
// consistent whatever the calls return.
type Session struct {
	owner string
	deps  Deps
	log   logging.Logger
	now   func() time.Time

	mu        sync.Mutex
	projects  []domain.AdminProject
	editingID string
	draft     *domain.AdminProject
	uploading bool
	syncing   bool
	notes     []domain.Notification
}

func NewSession(owner string, deps Deps) *Session {
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	if deps.Seeds == nil {
		deps.Seeds = content.Seeds
	}
	if deps.Uploader == nil {
		deps.Uploader = blob.Disabled{}
	}
	return &Session{
		owner: owner,
		deps:  deps,
		log:   log.With("component", "admin", "owner", owner),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Load replaces the published part of the list with the stored projects.
// Unsaved items from a sync stay, and a stored project never replaces an
// unsaved item with the same id.
func (s *Session) Load(ctx context.Context) error {
	stored, err := s.deps.Store.ListAll(ctx)
	if err != nil {
		s.log.Error(ctx, "admin: load projects failed", "error", err)
		s.notifyLocked(domain.LevelError, "Failed to load projects: "+err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]domain.AdminProject, 0)
	pendingIDs := map[string]bool{}
	for _, p := range s.projects {
		if unsaved(p.Status) {
			pending = append(pending, p)
			pendingIDs[p.ID] = true
		}
	}

	merged := make([]domain.AdminProject, 0, len(stored)+len(pending))
	for _, p := range stored {
		if pendingIDs[p.ID] {
			continue
		}
		merged = append(merged, domain.FromProject(p))
	}
	s.projects = append(merged, pending...)
	return nil
}

// Sync runs the repository sync and prepends candidates whose id is not in
// the list yet. It returns the number of items added.
func (s *Session) Sync(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return 0, ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	run, candidates, err := s.deps.Syncer.Sync(ctx, rsservice.TriggerAdmin)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false

	if err != nil {
		s.log.Error(ctx, "admin: sync failed", "error", err)
		s.notify(domain.LevelError, "Sync failed: "+err.Error())
		return 0, err
	}

	seen := make(map[string]bool, len(s.projects)+len(candidates))
	for _, p := range s.projects {
		seen[p.ID] = true
	}
	fresh := make([]domain.AdminProject, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		fresh = append(fresh, domain.FromCandidate(c))
	}
	s.projects = append(fresh, s.projects...)

	msg := fmt.Sprintf("Sync found %d new projects", len(fresh))
	if run != nil && run.Errors > 0 {
		msg += fmt.Sprintf(" (%d need manual review)", run.Errors)
	}
	s.notify(domain.LevelInfo, msg)
	return len(fresh), nil
}

// StartEdit copies the item into the draft buffer. Starting another edit
// replaces the current draft.
func (s *Session) StartEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrProjectNotFound
	}
	d := clone(s.projects[i])
	s.draft = &d
	s.editingID = id
	return nil
}

// UpdateDraft overlays the defined fields of patch on the draft. The id
// cannot change.
func (s *Session) UpdateDraft(patch content.ProjectPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return domain.ErrNoDraft
	}
	patch.ID = ""
	s.draft.ProjectPatch = s.draft.ProjectPatch.Merge(patch)
	return nil
}

// SaveEdit writes the draft back into the list, keeping the item's
// current status.
func (s *Session) SaveEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return domain.ErrNoDraft
	}
	i := s.indexOf(s.editingID)
	if i < 0 {
		return domain.ErrProjectNotFound
	}
	saved := *s.draft
	saved.Status = s.projects[i].Status
	s.projects[i] = saved
	s.draft = nil
	s.editingID = ""
	return nil
}

func (s *Session) DiscardEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	s.editingID = ""
}

// Publish sanitizes the item and merge-writes it. On failure the status
// stays as it was so the operator can retry.
func (s *Session) Publish(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrProjectNotFound
	}
	patch := clone(s.projects[i]).ProjectPatch
	s.mu.Unlock()

	if err := s.deps.Store.Publish(ctx, patch); err != nil {
		s.log.Error(ctx, "admin: publish failed", "id", id, "error", err)
		s.notifyLocked(domain.LevelError, "Failed to publish: "+err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.projects[i].Status = domain.StatusPublished
		s.projects[i].Error = ""
	}
	s.notify(domain.LevelSuccess, "Published "+id)
	s.log.Info(ctx, "admin: project published", "id", id)
	return nil
}

// Migrate writes every seed project to the store and reloads. A failing
// item is logged and skipped.
func (s *Session) Migrate(ctx context.Context, confirm bool) (MigrateResult, error) {
	if !confirm {
		return MigrateResult{}, domain.ErrConfirmationRequired
	}

	var res MigrateResult
	for _, p := range s.deps.Seeds() {
		if err := s.deps.Store.SaveRaw(ctx, p.ID, content.MigrationData(p)); err != nil {
			res.Failed++
			s.log.Warn(ctx, "admin: migrate project failed", "id", p.ID, "error", err)
			continue
		}
		res.Migrated++
	}

	if res.Failed > 0 {
		s.notifyLocked(domain.LevelError, fmt.Sprintf("Migrated %d projects, %d failed", res.Migrated, res.Failed))
	} else {
		s.notifyLocked(domain.LevelSuccess, fmt.Sprintf("Successfully migrated %d projects", res.Migrated))
	}
	s.log.Info(ctx, "admin: migration finished", "migrated", res.Migrated, "failed", res.Failed)

	_ = s.Load(ctx)
	return res, nil
}

// AttachImage uploads r and sets the returned URL as the draft image. Only
// one upload runs at a time.
func (s *Session) AttachImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return "", domain.ErrNoDraft
	}
	if s.uploading {
		s.mu.Unlock()
		return "", domain.ErrUploadInProgress
	}
	s.uploading = true
	editing := s.editingID
	s.mu.Unlock()

	url, err := s.deps.Uploader.Upload(ctx, blob.ObjectName(filename, s.now()), contentType, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploading = false
	if err != nil {
		s.log.Error(ctx, "admin: image upload failed", "error", err)
		s.notify(domain.LevelError, "Upload failed: "+err.Error())
		return "", err
	}
	if s.draft != nil && s.editingID == editing {
		s.draft.ImageURL = content.Ptr(url)
	}
	s.notify(domain.LevelSuccess, "Image uploaded")
	return url, nil
}

// View returns a snapshot and drains the notifications.
func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := domain.View{
		Projects:      make([]domain.AdminProject, 0, len(s.projects)),
		EditingID:     s.editingID,
		Uploading:     s.uploading,
		Syncing:       s.syncing,
		Notifications: s.notes,
	}
	for _, p := range s.projects {
		v.Projects = append(v.Projects, clone(p))
	}
	if s.draft != nil {
		d := clone(*s.draft)
		v.Draft = &d
	}
	if v.Notifications == nil {
		v.Notifications = []domain.Notification{}
	}
	s.notes = nil
	return v
}

func (s *Session) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// notify appends a notification. The caller holds s.mu.
func (s *Session) notify(level domain.Level, msg string) {
	s.notes = append(s.notes, domain.Notification{Level: level, Message: msg, At: s.now()})
	if len(s.notes) > maxNotifications {
		s.notes = s.notes[len(s.notes)-maxNotifications:]
	}
}

func (s *Session) notifyLocked(level domain.Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(level, msg)
}

func unsaved(st domain.Status) bool {
	return st == domain.StatusNew || st == domain.StatusError
}

func clone(p domain.AdminProject) domain.AdminProject {
	p.ProjectPatch = content.ProjectPatch{}.Merge(p.ProjectPatch)
	return p
}
