package llm

import "fmt"

// Prompt pairs a system instruction with user content.
type Prompt struct {
	System string
	User   string
}

// SummaryPrompt builds the Spanish lecture-summary request for a transcript.
func SummaryPrompt(transcript string) Prompt {
	return Prompt{
		System: "Eres un asistente útil que resume transcripciones en español de clases.",
		User:   fmt.Sprintf("Resume la siguiente transcripción en español:\n\n%s", transcript),
	}
}

// MergeSummariesPrompt builds the reduce step for chunked transcripts: the
// partial summaries are merged into one coherent summary.
func MergeSummariesPrompt(partials string) Prompt {
	return Prompt{
		System: "Eres un asistente útil que resume transcripciones en español de clases.",
		User: fmt.Sprintf("Combina los siguientes resúmenes parciales de una misma clase en un único resumen coherente en español:\n\n%s",
			partials),
	}
}

// ConceptMapPrompt builds the Spanish key-points request for a summary.
func ConceptMapPrompt(summary string) Prompt {
	return Prompt{
		System: "Eres un asistente que crea mapas conceptuales en español a partir de resúmenes.",
		User:   fmt.Sprintf("Genera un mapa conceptual en formato de puntos clave a partir del siguiente resumen:\n\n%s", summary),
	}
}

// FormatPrompt builds the request that reformats plain text as Markdown.
func FormatPrompt(text string) Prompt {
	return Prompt{
		System: "You are a helpful assistant that formats text into markdown.",
		User:   fmt.Sprintf("Please format the following text into markdown:\n\n%s", text),
	}
}
