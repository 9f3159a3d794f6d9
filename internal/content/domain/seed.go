package domain

// Seeds returns the built-in project list. Titles and descriptions are
// left empty; they come from the "projects" translation namespace.
func Seeds() []Project {
	out := make([]Project, 0, len(seeds))
	for _, s := range seeds {
		p := s
		p.Images = append([]string{}, s.Images...)
		p.Technologies = append([]string{}, s.Technologies...)
		p.Tags = append([]string{}, s.Tags...)
		p.IsVisible = true
		p.Source = SourceStatic
		p.ApplyDefaults()
		out = append(out, p)
	}
	return out
}

var seeds = []Project{
	{
		ID:           "spn-platform",
		ImageURL:     "/assets/images/projects/projects_spn_landing.jpg",
		LiveURL:      "https://www.sparepartsnow.de/",
		Technologies: []string{"nextJs", "TypeScript", "C#", ".ASP", "Azure", "Docker", "Kubernetes", "Google Analytics"},
		Category:     "web",
		Tags:         []string{"Next.js", "TypeScript", "Tailwind CSS"},
		Link:         "/projects/ecommerce-platform",
		Images:       []string{"/assets/images/projects/projects_spn_product_example.jpg"},
	},
	{
		ID:           "cml25",
		ImageURL:     "/assets/images/projects/projects_cml25_landing.jpg",
		LiveURL:      "https://cml25.netlify.app/",
		GithubURL:    "https://github.com/ChristianMLux/cml25",
		Technologies: []string{"nextJs", "TypeScript", "Tailwind", "Google Analytics", "Google Firebase"},
		Category:     "web",
		Tags:         []string{"Next.js", "TypeScript", "Tailwind CSS"},
		Link:         "/projects/cml25",
		Images:       []string{"/assets/images/projects/projects_cml25_about.jpg"},
	},
	{
		ID:           "signatures-project",
		ImageURL:     "/assets/images/signatures/signatures_overview.png",
		Technologies: []string{"fireworks", "photoshop"},
		Category:     "design",
		Tags:         []string{"Design", "Signatur", "Graphics"},
		Link:         "/projects/signature-project",
		Images:       []string{"/assets/images/signatures/_se_light.jpg"},
	},
	{
		ID:           "safetec-project",
		ImageURL:     "/assets/images/designs/_st_design5.jpg",
		Technologies: []string{"fireworks", "html", "css"},
		Category:     "web",
		Tags:         []string{"Design", "Website", "Work"},
		Link:         "/projects/safetec-project",
	},
	{
		ID:           "imaging-for-africa-project",
		ImageURL:     "/assets/images/designs/design_ifa_ohnekontakt.jpg",
		Technologies: []string{"fireworks", "html", "css"},
		Category:     "web",
		Tags:         []string{"Design", "Website", "Work"},
		Link:         "/projects/imaging-for-africa-project",
		Images:       []string{"/assets/images/designs/i4a_05.jpg"},
	},
	{
		ID:           "4-soul-project",
		ImageURL:     "/assets/images/designs/design_4_soul.jpg",
		Technologies: []string{"fireworks", "html", "css"},
		Category:     "web",
		Tags:         []string{"Design", "Website", "Hobby"},
		Link:         "/projects/4-soul",
	},
	{
		ID:           "wooden-portfolio-design",
		ImageURL:     "/assets/images/designs/design_pf_se2.jpg",
		Technologies: []string{"fireworks", "photoshop"},
		Category:     "design",
		Tags:         []string{"Hobby", "Early Stages"},
		Link:         "/projects/wooden-portfolio-design",
	},
	{
		ID:           "cmd-portfolio-design",
		ImageURL:     "/assets/images/designs/design_cmd.jpg",
		Technologies: []string{"fireworks", "photoshop"},
		Category:     "design",
		Tags:         []string{"Hobby", "Early Stages"},
		Link:         "/projects/cmd-portfolio-design",
		Images:       []string{"/assets/images/designs/design_cmd_white-blue.jpg"},
	},
	{
		ID:           "cc-portfolio-design",
		ImageURL:     "/assets/images/designs/cc_02.jpg",
		Technologies: []string{"fireworks", "photoshop"},
		Category:     "design",
		Tags:         []string{"Hobby", "Design"},
		Link:         "/projects/cc-portfolio-design",
	},
	{
		ID:           "imo-fan-project",
		ImageURL:     "/assets/images/designs/design_imo_old.png",
		Technologies: []string{"fireworks", "photoshop", "html", "css", "js"},
		Category:     "web",
		Tags:         []string{"Hobby", "Gaming", "Website", "Design"},
		Link:         "/projects/imo-fan-project",
		Images: []string{
			"/assets/images/designs/Imo_grund_003.jpg",
			"/assets/images/designs/Imo_grund_02_003.jpg",
		},
	},
}

// MigrationData is what the one-shot migration writes for a seed. Titles
// are the ids until an editor renames them.
func MigrationData(p Project) map[string]any {
	data := map[string]any{
		"title":        p.ID,
		"description":  "Imported from Legacy Data",
		"imageUrl":     p.ImageURL,
		"images":       append([]string{}, p.Images...),
		"technologies": append([]string{}, p.Technologies...),
		"tags":         append([]string{}, p.Tags...),
		"category":     p.Category,
		"isFeatured":   true,
		"isVisible":    true,
		"isPrivate":    false,
		"source":       SourceStore,
	}
	if p.GithubURL != "" {
		data["githubUrl"] = p.GithubURL
	}
	if p.LiveURL != "" {
		data["liveUrl"] = p.LiveURL
	}
	if p.Link != "" {
		data["link"] = p.Link
	}
	return data
}
