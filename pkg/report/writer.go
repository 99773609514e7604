package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
)

// Format is an artifact kind.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatHTML     Format = "html"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultFormats are always written by a scan.
var DefaultFormats = []Format{FormatJSON, FormatMarkdown}

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

var fileNames = map[Format]string{
	FormatJSON:     "dependencies.json",
	FormatMarkdown: "dependencies.md",
	FormatYAML:     "dependencies.yaml",
	FormatHTML:     "dependencies.html",
}

// ParseFormat accepts a format name or its common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ParseFormats parses names and always includes DefaultFormats. The result
// is deduplicated and in a stable order.
func ParseFormats(names []string) ([]Format, error) {
	formats := slices.Clone(DefaultFormats)

	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}

		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}

	order := []Format{FormatJSON, FormatMarkdown, FormatYAML, FormatHTML}
	slices.SortFunc(formats, func(a, b Format) int {
		return slices.Index(order, a) - slices.Index(order, b)
	})

	return formats, nil
}

// FileName is the artifact file name of the format.
func (f Format) FileName() string {
	return fileNames[f]
}

// Options configures rendering.
type Options struct {
	// DisplayCap bounds the external lists in the Markdown report.
	DisplayCap int
	// Validate checks the JSON artifact against the schema before it is returned.
	Validate bool
}

// Artifact is one rendered output file.
type Artifact struct {
	Format  Format
	Path    string
	Content []byte
}

// Render produces the content of one format.
func Render(g *depgraph.Graph, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := JSON(g)
		if err != nil {
			return nil, err
		}

		if opts.Validate {
			err = Check(data)
			if err != nil {
				return nil, err
			}
		}

		return data, nil
	case FormatMarkdown:
		return Markdown(g, opts.DisplayCap), nil
	case FormatYAML:
		return YAML(g)
	case FormatHTML:
		return HTML(g)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// RenderAll renders every format into artifacts placed under dir.
func RenderAll(g *depgraph.Graph, dir string, formats []Format, opts Options) ([]Artifact, error) {
	artifacts := make([]Artifact, 0, len(formats))

	for _, f := range formats {
		content, err := Render(g, f, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}

		artifacts = append(artifacts, Artifact{
			Format:  f,
			Path:    filepath.Join(dir, f.FileName()),
			Content: content,
		})
	}

	return artifacts, nil
}

// Write creates the parent directories and writes every artifact.
func Write(artifacts []Artifact) error {
	for _, a := range artifacts {
		err := os.MkdirAll(filepath.Dir(a.Path), dirPerm)
		if err != nil {
			return fmt.Errorf("write %s: %w", a.Path, err)
		}

		//nolint:gosec // report files are meant to be world-readable.
		err = os.WriteFile(a.Path, a.Content, filePerm)
		if err != nil {
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
	}

	return nil
}
