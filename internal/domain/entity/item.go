package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a menu entry of exactly one restaurant.
// Spiciness holds at most one tag; Tags holds the multi-valued dimensions.
type Item struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        decimal.Decimal
	IsActive     bool
	Spiciness    *Tag
	Tags         []Tag
	CreatedAt    time.Time

	// RestaurantActive mirrors the parent restaurant's active flag when the item is loaded for ordering.
	RestaurantActive bool
}

// TagsOf returns the item's tags for one dimension.
func (i *Item) TagsOf(dim Dimension) []Tag {
	if dim == DimensionSpiciness {
		if i.Spiciness == nil {
			return nil
		}

		return []Tag{*i.Spiciness}
	}

	var out []Tag
	for _, t := range i.Tags {
		if t.Dimension == dim {
			out = append(out, t)
		}
	}

	return out
}

// AllTags returns every tag attached to the item across all seven dimensions.
func (i *Item) AllTags() []Tag {
	out := make([]Tag, 0, len(i.Tags)+1)
	out = append(out, i.Tags...)
	if i.Spiciness != nil {
		out = append(out, *i.Spiciness)
	}

	return out
}

// IsOrderable reports whether the item and its restaurant are both active.
func (i *Item) IsOrderable() bool {
	return i.IsActive && i.RestaurantActive
}
