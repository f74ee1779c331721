// Package artifact derives the file paths shared by one pipeline run.
//
// Every artifact of a run is named from a single base stem; this package is
// the only place that knows the naming scheme.
package artifact

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies one of the derived artifacts of a run.
type Kind int

const (
	Transcript Kind = iota
	Summary
	ConceptMap
	VisualMap
	Markdown
)

// String returns the artifact kind name used in logs and errors.
func (k Kind) String() string {
	switch k {
	case Transcript:
		return "transcript"
	case Summary:
		return "summary"
	case ConceptMap:
		return "concept map"
	case VisualMap:
		return "visual map"
	case Markdown:
		return "markdown"
	default:
		return fmt.Sprintf("artifact(%d)", int(k))
	}
}

// suffix returns the filename suffix (including extension) for a kind.
func (k Kind) suffix() string {
	switch k {
	case Transcript:
		return "_transcript.txt"
	case Summary:
		return "_summary.txt"
	case ConceptMap:
		return "_concept_map.txt"
	case VisualMap:
		return "_visual_map.png"
	case Markdown:
		return ".md"
	default:
		return ""
	}
}

// Path returns the path of an artifact of the given kind for a run rooted at
// dir with the given base stem. Pure and total: any dir/base/kind combination
// yields a path.
func Path(dir, base string, kind Kind) string {
	return filepath.Join(dir, base+kind.suffix())
}

// Set holds every derived path of one pipeline run.
type Set struct {
	Dir  string
	Base string

	// Video is the source video path; empty when the run started from an
	// existing transcript.
	Video string

	Transcript string
	Summary    string
	ConceptMap string
	VisualMap  string
	Markdown   string
}

// Derive computes the artifact set for a run starting from a video file.
func Derive(videoPath string) Set {
	dir := filepath.Dir(videoPath)
	base := stem(videoPath)
	s := derive(dir, base)
	s.Video = videoPath
	return s
}

// DeriveFromTranscript computes the artifact set for a run starting from an
// existing transcript. A "_transcript" substring in the stem is stripped
// exactly once so derived names match a run that started from the video. The
// given transcript path is kept verbatim rather than re-derived.
func DeriveFromTranscript(transcriptPath string) Set {
	dir := filepath.Dir(transcriptPath)
	base := strings.Replace(stem(transcriptPath), "_transcript", "", 1)
	s := derive(dir, base)
	s.Transcript = transcriptPath
	return s
}

func derive(dir, base string) Set {
	return Set{
		Dir:        dir,
		Base:       base,
		Transcript: Path(dir, base, Transcript),
		Summary:    Path(dir, base, Summary),
		ConceptMap: Path(dir, base, ConceptMap),
		VisualMap:  Path(dir, base, VisualMap),
		Markdown:   Path(dir, base, Markdown),
	}
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
