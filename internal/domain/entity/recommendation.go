package entity

// UserContext is the profile snapshot handed to the recommender.
// Preferences are listed per dimension without filtering: disliked tags are signal too.
type UserContext struct {
	HeightCm      *float64                         `json:"height_cm,omitempty"`
	WeightKg      *float64                         `json:"weight_kg,omitempty"`
	Age           *int                             `json:"age,omitempty"`
	Gender        string                           `json:"gender,omitempty"`
	ActivityLevel string                           `json:"activity_level,omitempty"`
	Memo          string                           `json:"memo,omitempty"`
	Preferences   map[Dimension][]PreferenceSignal `json:"preferences"`
}

// PreferenceSignal is one {label, score} pair in a UserContext.
type PreferenceSignal struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// CatalogSnapshot is the complete catalog information available to the recommender.
type CatalogSnapshot []RestaurantSnapshot

// RestaurantSnapshot is one candidate restaurant with its active menu.
type RestaurantSnapshot struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Items []ItemSnapshot `json:"items"`
}

// ItemSnapshot flattens an item for the recommender. Price is a plain number.
type ItemSnapshot struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	Cuisines   []string `json:"cuisines"`
	Proteins   []string `json:"proteins"`
	Spiciness  *string  `json:"spiciness,omitempty"`
	MealTypes  []string `json:"meal_types"`
	Flavors    []string `json:"flavors"`
	Allergens  []string `json:"allergens"`
	Nutritions []string `json:"nutritions"`
}

// RecommendationRequest is the payload sent to the recommender.
type RecommendationRequest struct {
	User        UserContext     `json:"user"`
	Restaurants CatalogSnapshot `json:"restaurants"`
}

// Proposal is the recommender's structured selection.
type Proposal struct {
	RestaurantID int64          `json:"restaurant_id"`
	Items        []ProposalItem `json:"items"`
	Comment      string         `json:"comment"`
}

// ProposalItem is one proposed line. A nil Quantity means the recommender omitted it.
type ProposalItem struct {
	ItemID   int64 `json:"item_id"`
	Quantity *int  `json:"quantity,omitempty"`
}
