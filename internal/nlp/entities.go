// Package nlp wraps the prose NLP engine: sentence segmentation plus named
// entity recognition, scoped per sentence.
package nlp

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// SentenceEntities holds the recognized entities of one sentence, in the
// order they appear.
type SentenceEntities struct {
	Sentence string
	Entities []string
}

// ProseExtractor recognizes entities with prose's built-in NER model.
type ProseExtractor struct{}

// Extract segments text into sentences and returns the entities recognized
// in each. Sentences with no entities are omitted.
func (ProseExtractor) Extract(text string) ([]SentenceEntities, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}

	var result []SentenceEntities
	for _, sent := range doc.Sentences() {
		sentDoc, err := prose.NewDocument(sent.Text, prose.WithSegmentation(false))
		if err != nil {
			return nil, fmt.Errorf("analyze sentence: %w", err)
		}

		ents := sentDoc.Entities()
		if len(ents) == 0 {
			continue
		}

		se := SentenceEntities{Sentence: sent.Text}
		for _, ent := range ents {
			se.Entities = append(se.Entities, ent.Text)
		}
		result = append(result, se)
	}

	return result, nil
}
