package schema

import "strings"

// Crumb is one breadcrumb entry; URL should be absolute.
type Crumb struct {
	Name string
	URL  string
}

// BreadcrumbList builds a BreadcrumbList with 1-based positions.
func BreadcrumbList(crumbs []Crumb) Document {
	items := make([]any, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	doc := New("BreadcrumbList")
	doc["itemListElement"] = items
	return doc
}

// ListProduct is the product view used by ItemList helpers.
type ListProduct struct {
	Name        string
	URL         string
	ImageURL    string
	Description string
	Price       string
	Currency    string
	InStock     bool
}

// ListItemFunc maps a product at a zero-based index to its ListItem.
type ListItemFunc func(p ListProduct, index int) map[string]any

// ItemList builds an ItemList; transform defaults to a minimal Product entry.
func ItemList(products []ListProduct, transform ListItemFunc) Document {
	if transform == nil {
		transform = basicListItem
	}
	items := make([]any, 0, len(products))
	for i, p := range products {
		items = append(items, transform(p, i))
	}
	doc := New("ItemList")
	doc["numberOfItems"] = len(products)
	doc["itemListElement"] = items
	return doc
}

// DetailedListItem adds image, description and an Offer to each entry.
func DetailedListItem(defaultCurrency string) ListItemFunc {
	return func(p ListProduct, index int) map[string]any {
		item := basicListItem(p, index)
		product := item["item"].(map[string]any)
		product["image"] = p.ImageURL
		product["description"] = p.Description
		currency := strings.TrimSpace(p.Currency)
		if currency == "" {
			currency = defaultCurrency
		}
		availability := "https://schema.org/OutOfStock"
		if p.InStock {
			availability = "https://schema.org/InStock"
		}
		product["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         p.Price,
			"priceCurrency": currency,
			"availability":  availability,
		}
		pruned, _ := pruneObject(item)
		out, _ := pruned.(map[string]any)
		return out
	}
}

func basicListItem(p ListProduct, index int) map[string]any {
	return map[string]any{
		"@type":    "ListItem",
		"position": index + 1,
		"item": map[string]any{
			"@type": "Product",
			"name":  p.Name,
			"url":   p.URL,
		},
	}
}
