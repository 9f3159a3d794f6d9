package pages

import (
	"github.com/ChristianMLux/cml25-backend/internal/content/domain"
	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

type alternate struct {
	Code   locale.Code
	URL    string
	Active bool
}

// page is the data every template receives. Path is locale-agnostic.
type page struct {
	Locale     locale.Code
	Path       string
	Year       int
	Alternates []alternate
	Message    string

	Projects   []domain.Project
	Project    *domain.Project
	Related    []domain.Project
	Category   string
	Categories []string

	tr Translator
}

func (p page) T(ns, key string) string {
	if p.tr == nil {
		return key
	}
	if v := p.tr.T(p.Locale, ns, key); v != "" {
		return v
	}
	return key
}

// Link prefixes a root-relative path with the page locale.
func (p page) Link(path string) string {
	return locale.Localize(path, p.Locale)
}

func (p page) CategoryLabel(category string) string {
	if p.tr == nil {
		return category
	}
	if v := p.tr.T(p.Locale, "projects", "filter."+category); v != "" {
		return v
	}
	return category
}

type card struct {
	Page    page
	Project domain.Project
}
