package schema

import (
	"strings"

	"finitefield.org/hanko-seo/internal/domain"
)

// OrganizationGenerator builds an Organization from the record and the site settings.
type OrganizationGenerator struct{}

func (OrganizationGenerator) Type() domain.SchemaType { return domain.SchemaOrganization }

func (OrganizationGenerator) Generate(src Source) Document {
	doc := New(string(domain.SchemaOrganization))
	applyOrganization(doc, src, "logo")
	return Prune(doc)
}

func (OrganizationGenerator) Skeleton() Document {
	doc := New(string(domain.SchemaOrganization))
	doc["name"] = ""
	doc["url"] = ""
	doc["logo"] = ""
	doc["telephone"] = ""
	doc["email"] = ""
	doc["address"] = addressSkeleton()
	return doc
}

// LocalBusinessGenerator extends the Organization fields with price range and
// opening hours.
type LocalBusinessGenerator struct{}

func (LocalBusinessGenerator) Type() domain.SchemaType { return domain.SchemaLocalBusiness }

func (LocalBusinessGenerator) Generate(src Source) Document {
	doc := New(string(domain.SchemaLocalBusiness))
	applyOrganization(doc, src, "image")
	doc["priceRange"] = src.Settings.PriceRange
	if len(src.Settings.OpeningHours) > 0 {
		specs := make([]any, 0, len(src.Settings.OpeningHours))
		for _, hours := range src.Settings.OpeningHours {
			specs = append(specs, OpeningHoursSpecification(hours))
		}
		doc["openingHoursSpecification"] = specs
	}
	return Prune(doc)
}

func (LocalBusinessGenerator) Skeleton() Document {
	doc := New(string(domain.SchemaLocalBusiness))
	doc["name"] = ""
	doc["url"] = ""
	doc["image"] = ""
	doc["telephone"] = ""
	doc["email"] = ""
	doc["priceRange"] = ""
	doc["address"] = addressSkeleton()
	doc["openingHoursSpecification"] = []any{
		map[string]any{
			"@type":     "OpeningHoursSpecification",
			"dayOfWeek": "",
			"opens":     "",
			"closes":    "",
		},
	}
	return doc
}

// PostalAddress maps the settings address, or nil when every component is blank.
func PostalAddress(addr domain.Address) map[string]any {
	if addr.IsEmpty() {
		return nil
	}
	return map[string]any{
		"@type":           "PostalAddress",
		"streetAddress":   addr.Street,
		"addressLocality": addr.City,
		"addressRegion":   addr.Region,
		"postalCode":      addr.PostalCode,
		"addressCountry":  addr.Country,
	}
}

// OpeningHoursSpecification maps one settings entry. Extra keys win over the
// typed fields, matching how editors can hand-author the whole entry.
func OpeningHoursSpecification(hours domain.OpeningHours) map[string]any {
	spec := map[string]any{"@type": "OpeningHoursSpecification"}
	if len(hours.DayOfWeek) > 0 {
		days := make([]any, 0, len(hours.DayOfWeek))
		for _, d := range hours.DayOfWeek {
			days = append(days, d)
		}
		spec["dayOfWeek"] = days
	}
	spec["opens"] = hours.Opens
	spec["closes"] = hours.Closes
	for k, v := range hours.Extra {
		spec[k] = v
	}
	return spec
}

func applyOrganization(doc Document, src Source, imageKey string) {
	doc["name"] = organizationName(src)
	doc["url"] = organizationURL(src)
	doc["description"] = src.Description()
	doc[imageKey] = src.Image
	doc["telephone"] = src.Settings.Telephone
	doc["email"] = src.Settings.Email
	doc["address"] = PostalAddress(src.Settings.Address)
}

func organizationName(src Source) string {
	if src.Record != nil {
		if name := strings.TrimSpace(src.Record.OpenGraph.SiteName); name != "" {
			return name
		}
	}
	return src.App.Name
}

func organizationURL(src Source) string {
	if src.Record != nil {
		if url := strings.TrimSpace(src.Record.CanonicalURL); url != "" {
			return url
		}
	}
	return src.App.URL
}

func addressSkeleton() map[string]any {
	return map[string]any{
		"@type":           "PostalAddress",
		"streetAddress":   "",
		"addressLocality": "",
		"addressRegion":   "",
		"postalCode":      "",
		"addressCountry":  "",
	}
}
