// Package transcribe turns a local video file into transcript text via the
// OpenAI Whisper API.
package transcribe

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client calls Whisper for speech-to-text.
type Client struct {
	api *openai.Client
}

// NewClient creates a Whisper client.
func NewClient(apiKey string) *Client {
	return &Client{api: openai.NewClient(apiKey)}
}

// Transcribe uploads the video file and returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, videoPath string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: videoPath,
	}

	resp, err := c.api.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create transcription: %w", err)
	}

	return resp.Text, nil
}
