package domain

import (
	"errors"
	"time"

	content "github.com/ChristianMLux/cml25-backend/internal/content/domain"
	rsdomain "github.com/ChristianMLux/cml25-backend/internal/reposync/domain"
)

var (
	ErrNoDraft              = errors.New("no project is being edited")
	ErrProjectNotFound      = errors.New("project not in session")
	ErrConfirmationRequired = errors.New("migration requires confirmation")
	ErrUploadInProgress     = errors.New("an upload is already in progress")
	ErrNoFile               = errors.New("no file uploaded")
)

type Status string

const (
	StatusNew       Status = "new"
	StatusPublished Status = "published"
	StatusHidden    Status = "hidden"
	StatusError     Status = "error"
)

// AdminProject is a project as the admin session holds it. Only the
// embedded patch is ever written to the store.
type AdminProject struct {
	content.ProjectPatch
	GithubID int64  `json:"githubId,omitempty"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
}

// FromProject wraps a stored project. Name mirrors the title so the list
// has something to show for documents without one.
func FromProject(p content.Project) AdminProject {
	patch := content.PatchFromProject(p)
	name := p.Title
	if name == "" {
		name = p.ID
	}
	patch.Name = content.Ptr(name)

	return AdminProject{ProjectPatch: patch, Status: StatusPublished}
}

// FromCandidate wraps a sync candidate.
func FromCandidate(c rsdomain.Candidate) AdminProject {
	patch := content.ProjectPatch{
		ID:           c.ID,
		Title:        content.Ptr(c.Title),
		Name:         content.Ptr(c.Name),
		Description:  content.Ptr(c.Description),
		Technologies: append([]string{}, c.Technologies...),
		Tags:         append([]string{}, c.Tags...),
		IsPrivate:    content.Ptr(c.IsPrivate),
	}
	if c.FullDescription != "" {
		patch.FullDescription = content.Ptr(c.FullDescription)
	}
	if c.GithubURL != "" {
		patch.GithubURL = content.Ptr(c.GithubURL)
	}

	status := StatusNew
	if c.Status == rsdomain.StatusError {
		status = StatusError
	}
	return AdminProject{ProjectPatch: patch, GithubID: c.GithubID, Status: status, Error: c.Error}
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a transient message for the operator.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// View is a snapshot of a session.
type View struct {
	Projects      []AdminProject `json:"projects"`
	EditingID     string         `json:"editingId,omitempty"`
	Draft         *AdminProject  `json:"draft,omitempty"`
	Uploading     bool           `json:"uploading"`
	Syncing       bool           `json:"syncing"`
	Notifications []Notification `json:"notifications"`
}
