package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block at the top of a patch note file.
type FrontMatter struct {
	Title    string
	Slug     string
	Version  string
	Product  string
	Summary  string
	Category string
	Tags     []string
	Status   string
	Released *time.Time
	Draft    bool
	Custom   map[string]any
}

// ParseFrontMatter splits source into metadata and the Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

type frontMatterEnvelope struct {
	Title    string         `yaml:"title"`
	Slug     string         `yaml:"slug"`
	Version  string         `yaml:"version"`
	Product  string         `yaml:"product"`
	Summary  string         `yaml:"summary"`
	Category string         `yaml:"category"`
	Tags     []string       `yaml:"tags"`
	Status   string         `yaml:"status"`
	Released time.Time      `yaml:"released"`
	Draft    bool           `yaml:"draft"`
	Custom   map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	fm := FrontMatter{
		Title:    strings.TrimSpace(env.Title),
		Slug:     strings.TrimSpace(env.Slug),
		Version:  strings.TrimSpace(env.Version),
		Product:  strings.TrimSpace(env.Product),
		Summary:  strings.TrimSpace(env.Summary),
		Category: strings.TrimSpace(env.Category),
		Tags:     append([]string(nil), env.Tags...),
		Status:   strings.TrimSpace(env.Status),
		Draft:    env.Draft,
		Custom:   cloneMap(env.Custom),
	}
	if !env.Released.IsZero() {
		released := env.Released.UTC()
		fm.Released = &released
	}
	if fm.Draft {
		fm.Status = "draft"
	}
	return fm
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
