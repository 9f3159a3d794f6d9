package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/internal/docstore"
)

func TestFromDocument_Defaults(t *testing.T) {
	p, err := FromDocument(docstore.Document{ID: "x", Data: map[string]any{"name": "repo-x"}})
	require.NoError(t, err)

	assert.Equal(t, "x", p.ID)
	assert.Equal(t, "repo-x", p.Title)
	assert.Equal(t, PlaceholderImage, p.ImageURL)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.True(t, p.IsVisible)
	assert.False(t, p.IsFeatured)
	assert.False(t, p.IsPrivate)
	assert.Equal(t, SourceStore, p.Source)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Technologies)
	assert.NotNil(t, p.Tags)
}

func TestFromDocument_PrivateHidesGithubURL(t *testing.T) {
	p, err := FromDocument(docstore.Document{ID: "x", Data: map[string]any{
		"githubUrl": "https://github.com/me/x",
		"isPrivate": true,
	}})
	require.NoError(t, err)
	assert.Empty(t, p.GithubURL)
}

func TestFromDocument_Malformed(t *testing.T) {
	_, err := FromDocument(docstore.Document{ID: "x", Data: map[string]any{"isVisible": "yes"}})
	assert.Error(t, err)
}

func TestProjectPatch_Fields(t *testing.T) {
	p := ProjectPatch{
		ID:    "demo",
		Title: Ptr("Demo"),
		Tags:  []string{},
	}
	assert.Equal(t, map[string]any{"title": "Demo", "tags": []string{}}, p.Fields())
}

func TestProjectPatch_Merge(t *testing.T) {
	base := ProjectPatch{ID: "demo", Title: Ptr("Old"), Tags: []string{"a"}, IsVisible: Ptr(true)}
	got := base.Merge(ProjectPatch{Title: Ptr("New"), IsVisible: Ptr(false)})

	assert.Equal(t, "demo", got.ID)
	assert.Equal(t, "New", *got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.False(t, *got.IsVisible)
	assert.Equal(t, "Old", *base.Title)
}

func TestSanitize(t *testing.T) {
	t.Run("new document gets every default", func(t *testing.T) {
		out := Sanitize(ProjectPatch{ID: "demo", Name: Ptr("demo-repo")}, nil)

		assert.Equal(t, "demo-repo", out["title"])
		assert.Equal(t, PlaceholderImage, out["imageUrl"])
		assert.Equal(t, []string{}, out["images"])
		assert.Equal(t, []string{}, out["technologies"])
		assert.Equal(t, []string{}, out["tags"])
		assert.Equal(t, DefaultCategory, out["category"])
		assert.Equal(t, false, out["isFeatured"])
		assert.Equal(t, true, out["isVisible"])
		assert.Equal(t, false, out["isPrivate"])
		assert.Equal(t, SourceStore, out["source"])
		assert.NotContains(t, out, "description")
		assert.NotContains(t, out, "githubUrl")
	})

	t.Run("existing fields are not defaulted", func(t *testing.T) {
		existing := map[string]any{"imageUrl": "/img/a.png", "category": "design", "isVisible": false}
		out := Sanitize(ProjectPatch{ID: "demo", Title: Ptr("X")}, existing)

		assert.Equal(t, "X", out["title"])
		assert.NotContains(t, out, "imageUrl")
		assert.NotContains(t, out, "category")
		assert.NotContains(t, out, "isVisible")
		assert.Equal(t, []string{}, out["tags"])
	})

	t.Run("empty image in draft is defaulted", func(t *testing.T) {
		out := Sanitize(ProjectPatch{ID: "demo", ImageURL: Ptr("")}, nil)
		assert.Equal(t, PlaceholderImage, out["imageUrl"])
	})

	t.Run("explicit title wins over name", func(t *testing.T) {
		out := Sanitize(ProjectPatch{ID: "demo", Title: Ptr("T"), Name: Ptr("N")}, nil)
		assert.Equal(t, "T", out["title"])
	})
}

func TestSeeds(t *testing.T) {
	seeds := Seeds()
	require.Len(t, seeds, 10)

	ids := map[string]bool{}
	for _, s := range seeds {
		assert.False(t, ids[s.ID], "duplicate seed id %s", s.ID)
		ids[s.ID] = true
		assert.Equal(t, SourceStatic, s.Source)
		assert.True(t, s.IsVisible)
		assert.NotEmpty(t, s.Category)
		assert.NotNil(t, s.Images)
	}

	seeds[0].Tags[0] = "changed"
	assert.NotEqual(t, "changed", Seeds()[0].Tags[0])
}

func TestMigrationData(t *testing.T) {
	data := MigrationData(Seeds()[1])

	assert.Equal(t, "cml25", data["title"])
	assert.Equal(t, "Imported from Legacy Data", data["description"])
	assert.Equal(t, true, data["isFeatured"])
	assert.Equal(t, true, data["isVisible"])
	assert.Equal(t, SourceStore, data["source"])
	assert.Equal(t, "https://github.com/ChristianMLux/cml25", data["githubUrl"])
}
