package extract

// JSON-Schema builders for the record shapes the model must return. Every
// declared field is required (empty values are fine, absent ones are not);
// the prompt only asks for completeness, the schema enforces it.

func textContentSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"content", "imgUrl"},
		"properties": map[string]any{
			"content": map[string]any{"type": "string"},
			"imgUrl":  map[string]any{"type": "string"},
		},
	}
}

func sectionSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"textContents"},
		"properties": map[string]any{
			"textContents": map[string]any{
				"type":  "array",
				"items": textContentSchema(),
			},
		},
	}
}

func videoContentSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"title", "imgUrl", "videoUrl", "genres"},
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"imgUrl":   map[string]any{"type": "string"},
			"videoUrl": map[string]any{"type": "string"},
			"genres": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}

// BuildProjectSchema returns the schema a project extraction must satisfy.
func BuildProjectSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"required": []string{
			"id", "projectHeroImg", "projectTitle", "readTimeInMins",
			"overview", "problemStatement", "features", "demo", "relevantLinks",
		},
		"properties": map[string]any{
			"id":               map[string]any{"type": "string", "minLength": 1},
			"projectHeroImg":   map[string]any{"type": "string"},
			"projectTitle":     map[string]any{"type": "string", "minLength": 1},
			"readTimeInMins":   map[string]any{"type": "integer", "minimum": 0},
			"overview":         sectionSchema(),
			"problemStatement": map[string]any{"type": "string"},
			"features":         sectionSchema(),
			"demo":             videoContentSchema(),
			"relevantLinks": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"author": map[string]any{"type": []string{"string", "null"}},
		},
	}
}

// BuildCodelabSchema returns the schema a codelab extraction must satisfy.
func BuildCodelabSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"required": []string{
			"id", "screenshotUrl", "gcsUrl", "title", "keyLearnings", "releasedDate",
		},
		"properties": map[string]any{
			"id":            map[string]any{"type": "string", "minLength": 1},
			"screenshotUrl": map[string]any{"type": "string"},
			"gcsUrl":        map[string]any{"type": "string"},
			"title":         map[string]any{"type": "string", "minLength": 1},
			"keyLearnings": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"content"},
					"properties": map[string]any{
						"content": map[string]any{"type": "string"},
						"icon":    map[string]any{"type": []string{"string", "null"}},
					},
				},
			},
			"releasedDate": map[string]any{"type": "string"},
			"author":       map[string]any{"type": []string{"string", "null"}},
		},
	}
}
