package stage

import (
	"context"
	"errors"
	"testing"
)

type fakeFetcher struct {
	path string
	err  error
	url  string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, destDir string) (string, error) {
	f.url = url
	return f.path, f.err
}

func TestDownloadRun(t *testing.T) {
	fetcher := &fakeFetcher{path: "/videos/clase.mp4"}
	s := &Download{
		URL:     "https://host/clase.mp4",
		DestDir: "/videos",
		Fetcher: fetcher,
		Log:     discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if res.Output != "/videos/clase.mp4" {
		t.Errorf("Output = %q", res.Output)
	}
	if fetcher.url != "https://host/clase.mp4" {
		t.Errorf("fetched url = %q", fetcher.url)
	}
}

func TestDownloadFailure(t *testing.T) {
	s := &Download{
		URL:     "https://host/clase.mp4",
		Fetcher: &fakeFetcher{err: errors.New("403")},
		Log:     discardLogger(),
	}

	res := s.Run(context.Background())
	if res.Err == nil || !res.Empty {
		t.Errorf("Run() = %+v, want tagged empty failure", res)
	}
}
