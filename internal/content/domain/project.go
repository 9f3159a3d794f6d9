package domain

import (
	"errors"

	"github.com/ChristianMLux/cml25-backend/internal/docstore"
)

const (
	PlaceholderImage = "/assets/images/placeholder.jpg"
	DefaultCategory  = "web"

	// Provenance markers. Documents written through the store carry
	// SourceStore; the built-in seed list carries SourceStatic.
	SourceStore  = "firestore"
	SourceStatic = "static"

	CategoryAll = "all"
)

var ErrMissingID = errors.New("missing project id")

// Project is one portfolio item as pages and the public API see it.
type Project struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription,omitempty"`
	ImageURL        string   `json:"imageUrl"`
	Images          []string `json:"images"`
	Technologies    []string `json:"technologies"`
	Tags            []string `json:"tags"`
	Category        string   `json:"category"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	LiveURL         string   `json:"liveUrl,omitempty"`
	Link            string   `json:"link,omitempty"`
	Content         string   `json:"content,omitempty"`
	BlurDataURL     string   `json:"blurDataUrl,omitempty"`
	IsVisible       bool     `json:"isVisible"`
	IsFeatured      bool     `json:"isFeatured"`
	IsPrivate       bool     `json:"isPrivate"`
	Source          string   `json:"source,omitempty"`
}

// record mirrors a stored document. Pointers tell absent from zero.
type record struct {
	Title           *string  `json:"title"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	FullDescription *string  `json:"fullDescription"`
	ImageURL        *string  `json:"imageUrl"`
	Images          []string `json:"images"`
	Technologies    []string `json:"technologies"`
	Tags            []string `json:"tags"`
	Category        *string  `json:"category"`
	GithubURL       *string  `json:"githubUrl"`
	LiveURL         *string  `json:"liveUrl"`
	Link            *string  `json:"link"`
	Content         *string  `json:"content"`
	BlurDataURL     *string  `json:"blurDataUrl"`
	IsVisible       *bool    `json:"isVisible"`
	IsFeatured      *bool    `json:"isFeatured"`
	IsPrivate       *bool    `json:"isPrivate"`
	Source          *string  `json:"source"`
}

// FromDocument maps a stored document to a Project with every missing
// optional field defaulted.
func FromDocument(doc docstore.Document) (Project, error) {
	var r record
	if err := docstore.Decode(doc.Data, &r); err != nil {
		return Project{}, err
	}

	p := Project{
		ID:              doc.ID,
		Title:           firstNonEmpty(deref(r.Title), deref(r.Name)),
		Description:     deref(r.Description),
		FullDescription: deref(r.FullDescription),
		ImageURL:        deref(r.ImageURL),
		Images:          r.Images,
		Technologies:    r.Technologies,
		Tags:            r.Tags,
		Category:        deref(r.Category),
		GithubURL:       deref(r.GithubURL),
		LiveURL:         deref(r.LiveURL),
		Link:            deref(r.Link),
		Content:         deref(r.Content),
		BlurDataURL:     deref(r.BlurDataURL),
		IsVisible:       r.IsVisible == nil || *r.IsVisible,
		IsFeatured:      r.IsFeatured != nil && *r.IsFeatured,
		IsPrivate:       r.IsPrivate != nil && *r.IsPrivate,
		Source:          deref(r.Source),
	}
	if p.Source == "" {
		p.Source = SourceStore
	}
	p.ApplyDefaults()
	return p, nil
}

// ApplyDefaults fills the placeholder image, empty lists and the default
// category. Visibility is handled by the caller since false is meaningful.
func (p *Project) ApplyDefaults() {
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImage
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.IsPrivate {
		p.GithubURL = ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
