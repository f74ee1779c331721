package stage

import (
	"context"
	"log/slog"
)

// Download retrieves the source video. It runs standalone ahead of the
// pipeline; Run() assumes the video is already local.
type Download struct {
	URL     string
	DestDir string

	Fetcher Fetcher
	Log     *slog.Logger
}

// Name implements Runner.
func (s *Download) Name() string { return NameDownload }

// Run performs the download and tags the outcome. There is no separate
// Produce phase: the artifact streams straight to disk.
func (s *Download) Run(ctx context.Context) Result {
	return timed(func() Result {
		path, err := s.Fetcher.Fetch(ctx, s.URL, s.DestDir)
		if err != nil {
			s.Log.Error("download failed", "url", s.URL, "error", err)
			return Result{Stage: NameDownload, Err: err, Empty: true}
		}
		return Result{Stage: NameDownload, Output: path}
	})
}
