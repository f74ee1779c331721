package textchunk

import (
	"strings"
	"testing"
)

func TestSplitShortContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\n\t ", 0},
		{"below threshold", "Una clase corta sobre el método científico.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.content, DefaultConfig())
			if len(chunks) != tt.want {
				t.Errorf("Split() got %d chunks, want %d", len(chunks), tt.want)
			}
		})
	}
}

func TestSplitParagraphBoundaries(t *testing.T) {
	config := Config{Threshold: 50, TargetSize: 40, MaxSize: 60}

	para := strings.Repeat("palabra ", 6) // ~48 chars, under MaxSize
	content := para + "\n\n" + para + "\n\n" + para

	chunks := Split(content, config)
	if len(chunks) < 2 {
		t.Fatalf("Split() got %d chunks, want >= 2", len(chunks))
	}
	for i, c := range chunks {
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk[%d] is empty", i)
		}
	}
}

func TestSplitOversizedParagraphAtSentences(t *testing.T) {
	config := Config{Threshold: 50, TargetSize: 60, MaxSize: 80}

	// One long paragraph of short sentences, no blank lines.
	sentence := "La ciencia avanza con datos. "
	content := strings.Repeat(sentence, 10)

	chunks := Split(content, config)
	if len(chunks) < 2 {
		t.Fatalf("Split() got %d chunks, want >= 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > config.MaxSize+len(sentence) {
			t.Errorf("chunk[%d] length %d far exceeds max %d", i, len(c), config.MaxSize)
		}
	}
	// Nothing lost: every sentence word count preserved.
	joined := strings.Join(chunks, " ")
	if got, want := strings.Count(joined, "datos."), 10; got != want {
		t.Errorf("sentences after split = %d, want %d", got, want)
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("La clase empezó tarde. Hubo muchas preguntas. Terminó bien.")
	if len(sentences) != 3 {
		t.Fatalf("splitSentences() got %d sentences, want 3: %q", len(sentences), sentences)
	}

	// A period after a single capital (initials, enumeration labels) does
	// not end the sentence.
	sentences = splitSentences("Ver el punto B. Luego continuar con el resto.")
	if len(sentences) != 1 {
		t.Errorf("splitSentences() split at initial: %q", sentences)
	}
}

func TestShouldSplit(t *testing.T) {
	config := Config{Threshold: 10}
	if ShouldSplit("corto", config) {
		t.Error("ShouldSplit() = true for short content")
	}
	if !ShouldSplit("contenido bastante largo", config) {
		t.Error("ShouldSplit() = false for long content")
	}
}
