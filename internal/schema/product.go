package schema

import "finitefield.org/hanko-seo/internal/domain"

// ProductGenerator passes title, description and image straight through.
type ProductGenerator struct{}

func (ProductGenerator) Type() domain.SchemaType { return domain.SchemaProduct }

func (ProductGenerator) Generate(src Source) Document {
	doc := New(string(domain.SchemaProduct))
	doc["name"] = src.Title()
	doc["description"] = src.Description()
	doc["image"] = src.Image
	return Prune(doc)
}

func (ProductGenerator) Skeleton() Document {
	doc := New(string(domain.SchemaProduct))
	doc["name"] = ""
	doc["description"] = ""
	doc["image"] = ""
	doc["brand"] = map[string]any{"@type": "Brand", "name": ""}
	doc["offers"] = map[string]any{
		"@type":         "Offer",
		"price":         "",
		"priceCurrency": "USD",
		"availability":  "https://schema.org/InStock",
	}
	return doc
}
