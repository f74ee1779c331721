package stage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"apuntes/internal/artifact"
)

// MarkdownAssemble produces the final study bundle: one Markdown document
// referencing the video and embedding every derived artifact.
type MarkdownAssemble struct {
	// Paths is the artifact set of the run; Paths.Video may be a local
	// path, a remote URL, or empty.
	Paths artifact.Set

	Log *slog.Logger
}

// Name implements Runner.
func (s *MarkdownAssemble) Name() string { return NameMarkdown }

// Produce builds the document. A section whose source file cannot be read
// becomes a placeholder; assembly never aborts over a missing section.
func (s *MarkdownAssemble) Produce(ctx context.Context) (string, error) {
	s.Log.Info("generating markdown bundle", "output", s.Paths.Markdown)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", s.Paths.Base)

	b.WriteString("\n## Video\n")
	if tag := s.videoTag(); tag != "" {
		b.WriteString(tag)
	}

	b.WriteString("\n## Resumen\n")
	b.WriteString(s.readSection(s.Paths.Summary, "summary"))

	b.WriteString("\n## Mapa Conceptual\n")
	b.WriteString(s.readSection(s.Paths.ConceptMap, "concept map"))

	b.WriteString("\n## Mapa Visual\n")
	fmt.Fprintf(&b, "![Mapa Visual](%s)\n", filepath.Base(s.Paths.VisualMap))

	return b.String(), nil
}

// videoTag renders the HTML5 video element: remote URLs verbatim, local
// paths relativized to the markdown file's directory.
func (s *MarkdownAssemble) videoTag() string {
	video := s.Paths.Video
	if video == "" {
		return ""
	}
	src := video
	if !strings.HasPrefix(video, "http") {
		rel, err := filepath.Rel(filepath.Dir(s.Paths.Markdown), video)
		if err != nil {
			rel = video
		}
		src = filepath.ToSlash(rel)
	}
	return fmt.Sprintf("<video controls src=\"%s\" width=\"600\"></video>\n", src)
}

// readSection returns a file's content fenced for markdown, or the literal
// error placeholder when it cannot be read.
func (s *MarkdownAssemble) readSection(path, section string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		s.Log.Error("error reading section file", "section", section, "path", path, "error", err)
		return fmt.Sprintf("Error reading %s file.\n", section)
	}
	return fmt.Sprintf("```\n%s\n```\n", string(data))
}

// Save writes the document; empty content is logged and not written.
func (s *MarkdownAssemble) Save(content, path string) error {
	return saveText(s.Log, NameMarkdown, content, path)
}

// Run executes both phases and tags the outcome.
func (s *MarkdownAssemble) Run(ctx context.Context) Result {
	return timed(func() Result {
		content, err := s.Produce(ctx)
		if err != nil {
			s.Log.Error("markdown assembly failed", "error", err)
			return Result{Stage: NameMarkdown, Err: err, Empty: true}
		}
		if err := s.Save(content, s.Paths.Markdown); err != nil {
			return Result{Stage: NameMarkdown, Err: err}
		}
		return Result{Stage: NameMarkdown, Output: s.Paths.Markdown}
	})
}
