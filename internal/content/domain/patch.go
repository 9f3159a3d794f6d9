package domain

// ProjectPatch is a partial project write. Nil fields are absent and are
// never written, so a partial edit cannot erase stored data. An empty,
// non-nil slice is an explicit empty list.
type ProjectPatch struct {
	ID              string   `json:"id"`
	Title           *string  `json:"title,omitempty"`
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	FullDescription *string  `json:"fullDescription,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	Images          []string `json:"images,omitempty"`
	Technologies    []string `json:"technologies,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Category        *string  `json:"category,omitempty"`
	GithubURL       *string  `json:"githubUrl,omitempty"`
	LiveURL         *string  `json:"liveUrl,omitempty"`
	Link            *string  `json:"link,omitempty"`
	Content         *string  `json:"content,omitempty"`
	BlurDataURL     *string  `json:"blurDataUrl,omitempty"`
	IsVisible       *bool    `json:"isVisible,omitempty"`
	IsFeatured      *bool    `json:"isFeatured,omitempty"`
	IsPrivate       *bool    `json:"isPrivate,omitempty"`
	Source          *string  `json:"source,omitempty"`
}

// Fields returns the defined fields as document data. The id is the key,
// it is not part of the data.
func (p ProjectPatch) Fields() map[string]any {
	out := map[string]any{}
	putString(out, "title", p.Title)
	putString(out, "name", p.Name)
	putString(out, "description", p.Description)
	putString(out, "fullDescription", p.FullDescription)
	putString(out, "imageUrl", p.ImageURL)
	putList(out, "images", p.Images)
	putList(out, "technologies", p.Technologies)
	putList(out, "tags", p.Tags)
	putString(out, "category", p.Category)
	putString(out, "githubUrl", p.GithubURL)
	putString(out, "liveUrl", p.LiveURL)
	putString(out, "link", p.Link)
	putString(out, "content", p.Content)
	putString(out, "blurDataUrl", p.BlurDataURL)
	putBool(out, "isVisible", p.IsVisible)
	putBool(out, "isFeatured", p.IsFeatured)
	putBool(out, "isPrivate", p.IsPrivate)
	putString(out, "source", p.Source)
	return out
}

// Merge overlays the defined fields of other onto p.
func (p ProjectPatch) Merge(other ProjectPatch) ProjectPatch {
	if other.ID != "" {
		p.ID = other.ID
	}
	p.Title = pick(p.Title, other.Title)
	p.Name = pick(p.Name, other.Name)
	p.Description = pick(p.Description, other.Description)
	p.FullDescription = pick(p.FullDescription, other.FullDescription)
	p.ImageURL = pick(p.ImageURL, other.ImageURL)
	if other.Images != nil {
		p.Images = append([]string{}, other.Images...)
	}
	if other.Technologies != nil {
		p.Technologies = append([]string{}, other.Technologies...)
	}
	if other.Tags != nil {
		p.Tags = append([]string{}, other.Tags...)
	}
	p.Category = pick(p.Category, other.Category)
	p.GithubURL = pick(p.GithubURL, other.GithubURL)
	p.LiveURL = pick(p.LiveURL, other.LiveURL)
	p.Link = pick(p.Link, other.Link)
	p.Content = pick(p.Content, other.Content)
	p.BlurDataURL = pick(p.BlurDataURL, other.BlurDataURL)
	p.IsVisible = pick(p.IsVisible, other.IsVisible)
	p.IsFeatured = pick(p.IsFeatured, other.IsFeatured)
	p.IsPrivate = pick(p.IsPrivate, other.IsPrivate)
	p.Source = pick(p.Source, other.Source)
	return p
}

// PatchFromProject turns a full project into a patch defining every field.
func PatchFromProject(p Project) ProjectPatch {
	return ProjectPatch{
		ID:              p.ID,
		Title:           Ptr(p.Title),
		Description:     Ptr(p.Description),
		FullDescription: optional(p.FullDescription),
		ImageURL:        Ptr(p.ImageURL),
		Images:          append([]string{}, p.Images...),
		Technologies:    append([]string{}, p.Technologies...),
		Tags:            append([]string{}, p.Tags...),
		Category:        Ptr(p.Category),
		GithubURL:       optional(p.GithubURL),
		LiveURL:         optional(p.LiveURL),
		Link:            optional(p.Link),
		Content:         optional(p.Content),
		BlurDataURL:     optional(p.BlurDataURL),
		IsVisible:       Ptr(p.IsVisible),
		IsFeatured:      Ptr(p.IsFeatured),
		IsPrivate:       Ptr(p.IsPrivate),
		Source:          optional(p.Source),
	}
}

// Sanitize prepares a patch for publishing. Title falls back to name.
// Defaults are filled only for fields that neither the patch nor the
// existing document define, so publishing never overwrites stored values
// with defaults. existing is nil for a new document. The result always
// carries the store provenance.
func Sanitize(p ProjectPatch, existing map[string]any) map[string]any {
	if p.Title == nil || *p.Title == "" {
		if p.Name != nil && *p.Name != "" {
			p.Title = Ptr(*p.Name)
		}
	}

	out := p.Fields()
	defaults := map[string]any{
		"imageUrl":     PlaceholderImage,
		"images":       []string{},
		"technologies": []string{},
		"tags":         []string{},
		"category":     DefaultCategory,
		"isFeatured":   false,
		"isVisible":    true,
		"isPrivate":    false,
	}
	for k, v := range defaults {
		if cur, ok := out[k]; ok && !isBlank(cur) {
			continue
		}
		if prev, ok := existing[k]; ok && !isBlank(prev) {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	out["source"] = SourceStore
	return out
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

func Ptr[T any](v T) *T {
	return &v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func pick[T any](cur, next *T) *T {
	if next != nil {
		return next
	}
	return cur
}

func putString(m map[string]any, k string, v *string) {
	if v != nil {
		m[k] = *v
	}
}

func putBool(m map[string]any, k string, v *bool) {
	if v != nil {
		m[k] = *v
	}
}

func putList(m map[string]any, k string, v []string) {
	if v != nil {
		m[k] = append([]string{}, v...)
	}
}
