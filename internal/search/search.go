package search

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// All is the sentinel parameter value meaning "no constraint".
const All = "all"

// Params holds the raw search parameters as supplied by the client.
// Every field is optional; numeric fields arrive as strings and are
// validated leniently (an unparsable value drops the constraint rather
// than failing the request).
type Params struct {
	Query       string   `json:"q,omitempty"`
	Cuisine     string   `json:"cuisine,omitempty"`
	MealType    string   `json:"mealType,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	PrepTimeMax string   `json:"prepTimeMax,omitempty"`
	CookTimeMax string   `json:"cookTimeMax,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MinRating   string   `json:"minRating,omitempty"`
	SortBy      string   `json:"sortBy,omitempty"`
}

// escapeLike escapes the LIKE wildcards so user input always matches
// literally. The escape character is declared as backslash in every
// generated pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Scope returns a GORM scope applying the filter predicate: published
// recipes only, AND of every supplied constraint, with the free-text
// query matching any of title, description, tags or ingredient names as
// a case-insensitive literal substring.
func (p Params) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("is_published = ?", true)

		if q := strings.TrimSpace(p.Query); q != "" {
			tx = applyTextQuery(tx, q)
		}

		if p.Cuisine != "" && p.Cuisine != All {
			tx = tx.Where("cuisine = ?", p.Cuisine)
		}
		if p.MealType != "" && p.MealType != All {
			tx = tx.Where("meal_type = ?", p.MealType)
		}
		if p.Difficulty != "" && p.Difficulty != All {
			tx = tx.Where("difficulty = ?", p.Difficulty)
		}

		if p.PrepTimeMax != "" {
			if v, err := strconv.ParseFloat(p.PrepTimeMax, 64); err == nil {
				tx = tx.Where("prep_time <= ?", v)
			}
		}
		if p.CookTimeMax != "" {
			if v, err := strconv.ParseFloat(p.CookTimeMax, 64); err == nil {
				tx = tx.Where("cook_time <= ?", v)
			}
		}
		if p.MinRating != "" {
			if v, err := strconv.ParseFloat(p.MinRating, 64); err == nil {
				tx = tx.Where("average_rating >= ?", v)
			}
		}

		if len(p.Tags) > 0 {
			tx = applyTagFilter(tx, p.Tags)
		}

		return tx
	}
}

func applyTextQuery(tx *gorm.DB, q string) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		like := "%" + escapeLike(q) + "%"
		return tx.Where(
			`(title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\'`+
				` OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS t(tag) WHERE t.tag ILIKE ? ESCAPE '\')`+
				` OR EXISTS (SELECT 1 FROM jsonb_array_elements(ingredients) AS ing WHERE ing.value->>'name' ILIKE ? ESCAPE '\'))`,
			like, like, like, like,
		)
	}

	// SQLite stores the JSONB columns as plain JSON text; json_each
	// unpacks them so matching stays per-element, never against the
	// serialized punctuation or key names.
	like := "%" + escapeLike(strings.ToLower(q)) + "%"
	return tx.Where(
		`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`+
			` OR EXISTS (SELECT 1 FROM json_each(tags) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\')`+
			` OR EXISTS (SELECT 1 FROM json_each(ingredients) WHERE LOWER(json_extract(json_each.value, '$.name')) LIKE ? ESCAPE '\'))`,
		like, like, like, like,
	)
}

// applyTagFilter matches recipes whose tag list contains at least one of
// the supplied tags.
func applyTagFilter(tx *gorm.DB, tags []string) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS t(tag) WHERE t.tag IN ?)",
			tags,
		)
	}

	return tx.Where(
		"EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value IN ?)",
		tags,
	)
}

// OrderClause maps a sort mode to its ordering. Unknown modes, the
// empty string and "relevance" all order by publish time descending;
// real relevance ranking is not implemented and "relevance" is kept as
// an accepted alias for compatibility.
func (p Params) OrderClause() string {
	switch p.SortBy {
	case "rating":
		return "average_rating DESC, rating_count DESC"
	case "popular":
		return "view_count DESC"
	case "quickest":
		return "cook_time ASC, prep_time ASC"
	case "newest", "relevance":
		return "published_at DESC"
	default:
		return "published_at DESC"
	}
}
