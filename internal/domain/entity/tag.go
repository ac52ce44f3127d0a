package entity

// Dimension is one of the seven independent classification axes applied to menu items.
type Dimension string

const (
	DimensionCuisine   Dimension = "cuisine"
	DimensionProtein   Dimension = "protein"
	DimensionSpiciness Dimension = "spiciness"
	DimensionMealType  Dimension = "meal_type"
	DimensionFlavor    Dimension = "flavor"
	DimensionAllergen  Dimension = "allergen"
	DimensionNutrition Dimension = "nutrition"
)

// Dimensions lists every tag dimension in presentation order.
var Dimensions = []Dimension{
	DimensionCuisine,
	DimensionProtein,
	DimensionSpiciness,
	DimensionMealType,
	DimensionFlavor,
	DimensionAllergen,
	DimensionNutrition,
}

// String returns the string representation of the Dimension.
func (d Dimension) String() string {
	return string(d)
}

// IsValid reports whether d names one of the seven dimensions.
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionCuisine, DimensionProtein, DimensionSpiciness, DimensionMealType,
		DimensionFlavor, DimensionAllergen, DimensionNutrition:
		return true
	default:
		return false
	}
}

// IsMultiValued reports whether an item may carry several tags of this dimension.
// Spiciness is the only singular dimension.
func (d Dimension) IsMultiValued() bool {
	return d != DimensionSpiciness
}

// Tag is immutable reference data: a (key, label) pair within one dimension.
type Tag struct {
	ID        int64
	Dimension Dimension
	Key       string
	Label     string
}
