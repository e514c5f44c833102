package entities

import "strings"

type Category string

const (
	CategoryAcademic  Category = "academic"
	CategoryCultural  Category = "cultural"
	CategorySports    Category = "sports"
	CategoryTechnical Category = "technical"
	CategoryWorkshop  Category = "workshop"
	CategorySeminar   Category = "seminar"
	CategoryOther     Category = "other"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{
	CategoryAcademic,
	CategoryCultural,
	CategorySports,
	CategoryTechnical,
	CategoryWorkshop,
	CategorySeminar,
	CategoryOther,
}

// ParseCategory normalizes s and reports whether it is a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}
