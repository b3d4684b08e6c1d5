package schema

import "finitefield.org/hanko-seo/internal/domain"

// FAQGenerator maps the record's FAQ pairs to a FAQPage.
type FAQGenerator struct{}

func (FAQGenerator) Type() domain.SchemaType { return domain.SchemaFAQPage }

func (FAQGenerator) Generate(src Source) Document {
	var pairs []domain.FAQPair
	if src.Record != nil {
		pairs = src.Record.FAQPairs
	}
	return FAQPage(pairs)
}

func (FAQGenerator) Skeleton() Document {
	doc := New(string(domain.SchemaFAQPage))
	doc["mainEntity"] = []any{
		map[string]any{
			"@type":          "Question",
			"name":           "",
			"acceptedAnswer": map[string]any{"@type": "Answer", "text": ""},
		},
	}
	return doc
}

// FAQPage builds a pruned FAQPage preserving pair order.
func FAQPage(pairs []domain.FAQPair) Document {
	doc := New(string(domain.SchemaFAQPage))
	questions := make([]any, 0, len(pairs))
	for _, pair := range pairs {
		questions = append(questions, map[string]any{
			"@type": "Question",
			"name":  pair.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  pair.Answer,
			},
		})
	}
	doc["mainEntity"] = questions
	return Prune(doc)
}
