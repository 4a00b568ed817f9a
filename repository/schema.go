package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"aipirat/models"

	"github.com/xeipuuv/gojsonschema"
)

const projectsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id":              {"type": "string", "minLength": 1},
      "title":           {"type": "string"},
      "description":     {"type": "string"},
      "longDescription": {"type": "string"},
      "thumbnail":       {"type": "string"},
      "images":          {"type": ["array", "null"], "items": {"type": "string"}},
      "tags":            {"type": ["array", "null"], "items": {"type": "string"}},
      "githubUrl":       {"type": "string"},
      "demoUrl":         {"type": "string"},
      "createdAt":       {"type": "integer"}
    }
  }
}`

var compiledProjectsSchema = mustCompile(projectsSchema)

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile projects schema: %v", err))
	}
	return s
}

// decodeProjects validates raw against the collection schema before decoding it.
func decodeProjects(raw string) ([]models.Project, error) {
	result, err := compiledProjectsSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("projects do not match schema: %s", strings.Join(msgs, "; "))
	}

	var projects []models.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	for i := range projects {
		normalize(&projects[i])
	}
	return projects, nil
}

func normalize(p *models.Project) {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
