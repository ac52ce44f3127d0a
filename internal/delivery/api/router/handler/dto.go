package handler

import (
	"time"

	"tastebud/internal/domain/entity"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Requests ---

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// orderLineRequest leaves quantity validation to the order service so that
// non-positive quantities surface as INVALID_QUANTITY.
type orderLineRequest struct {
	ItemID   int64 `json:"item_id" validate:"required"`
	Quantity int   `json:"quantity"`
}

type createOrderRequest struct {
	RestaurantID int64              `json:"restaurant_id" validate:"required"`
	Items        []orderLineRequest `json:"items" validate:"dive"`
}

type autoOrderRequest struct {
	RestaurantIDs []int64 `json:"restaurant_ids" validate:"required,min=1"`
}

type updateProfileRequest struct {
	HeightCm      *float64 `json:"height_cm" validate:"omitempty,gt=0,lte=300"`
	WeightKg      *float64 `json:"weight_kg" validate:"omitempty,gt=0,lte=500"`
	Age           *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender        *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	ActivityLevel *string  `json:"activity_level" validate:"omitempty,oneof=sedentary light active athlete"`
	Memo          *string  `json:"memo" validate:"omitempty,max=1000"`
}

type muteRequest struct {
	Dimension string `json:"dimension" validate:"required"`
	TagKey    string `json:"tag_key" validate:"required"`
}

type resolveRestaurantsRequest struct {
	PlaceIDs []string `json:"place_ids" validate:"max=100"`
}

type tagRefRequest struct {
	Dimension string `json:"dimension" validate:"required"`
	Key       string `json:"key" validate:"required"`
}

type itemRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	IsActive    *bool           `json:"is_active"`
	Tags        []tagRefRequest `json:"tags" validate:"dive"`
}

func (r *itemRequest) toInput() *usecase.ItemInput {
	input := &usecase.ItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		IsActive:    r.IsActive == nil || *r.IsActive,
		Tags:        make([]usecase.TagRef, 0, len(r.Tags)),
	}
	for _, tag := range r.Tags {
		input.Tags = append(input.Tags, usecase.TagRef{Dimension: entity.Dimension(tag.Dimension), Key: tag.Key})
	}

	return input
}

// --- Responses ---

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role.String(),
	}
}

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`
}

type createOrderResponse struct {
	OrderID      int64  `json:"order_id"`
	TotalPrice   string `json:"total_price"`
	UpdatedPrefs bool   `json:"updated_prefs"`
}

type orderLineResponse struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	LineTotal string `json:"line_total"`
}

type autoOrderResponse struct {
	OrderID        int64               `json:"order_id"`
	RestaurantID   int64               `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	Items          []orderLineResponse `json:"items"`
	TotalPrice     string              `json:"total_price"`
	AIComment      string              `json:"ai_comment"`
}

type orderResponse struct {
	OrderID        int64               `json:"order_id"`
	RestaurantID   int64               `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	Status         string              `json:"status"`
	Items          []orderLineResponse `json:"items"`
	TotalPrice     string              `json:"total_price"`
	CreatedAt      time.Time           `json:"created_at"`
}

func toOrderLines(items []entity.OrderItem) []orderLineResponse {
	lines := make([]orderLineResponse, 0, len(items))
	for i := range items {
		line := &items[i]
		lines = append(lines, orderLineResponse{
			ItemID:    line.ItemID,
			Name:      line.ItemName,
			Quantity:  line.Quantity,
			Price:     line.PriceAtOrder.StringFixed(2),
			LineTotal: line.LineTotal().StringFixed(2),
		})
	}

	return lines
}

func toOrderResponse(order *entity.Order) *orderResponse {
	return &orderResponse{
		OrderID:        order.ID,
		RestaurantID:   order.RestaurantID,
		RestaurantName: order.RestaurantName,
		Status:         string(order.Status),
		Items:          toOrderLines(order.Items),
		TotalPrice:     order.TotalPrice.StringFixed(2),
		CreatedAt:      order.CreatedAt,
	}
}

type tagResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type likedTagResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

type profileResponse struct {
	HeightCm      *float64                      `json:"height_cm"`
	WeightKg      *float64                      `json:"weight_kg"`
	Age           *int                          `json:"age"`
	Gender        string                        `json:"gender"`
	ActivityLevel string                        `json:"activity_level"`
	Memo          string                        `json:"memo"`
	Preferences   map[string][]likedTagResponse `json:"preferences"`
}

func toProfileResponse(view *usecase.ProfileView) *profileResponse {
	resp := &profileResponse{
		HeightCm:      view.Profile.HeightCm,
		WeightKg:      view.Profile.WeightKg,
		Age:           view.Profile.Age,
		Gender:        string(view.Profile.Gender),
		ActivityLevel: string(view.Profile.ActivityLevel),
		Memo:          view.Profile.Memo,
		Preferences:   make(map[string][]likedTagResponse, len(view.Liked)),
	}
	for dim, entries := range view.Liked {
		liked := make([]likedTagResponse, 0, len(entries))
		for _, entry := range entries {
			liked = append(liked, likedTagResponse{Key: entry.Tag.Key, Label: entry.Tag.Label, Score: entry.Score})
		}
		resp.Preferences[dim.String()] = liked
	}

	return resp
}

type restaurantResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	PlaceID   string   `json:"place_id"`
	DistanceM *float64 `json:"distance_m,omitempty"`
}

func toRestaurantResponse(restaurant *entity.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:        restaurant.ID,
		Name:      restaurant.Name,
		Address:   restaurant.Address,
		Latitude:  restaurant.Latitude,
		Longitude: restaurant.Longitude,
		PlaceID:   restaurant.PlaceID,
	}
}

type itemResponse struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Price       string                   `json:"price"`
	IsActive    bool                     `json:"is_active"`
	Tags        map[string][]tagResponse `json:"tags"`
}

func toItemResponse(item *entity.Item) itemResponse {
	tags := make(map[string][]tagResponse, len(entity.Dimensions))
	for _, dim := range entity.Dimensions {
		dimTags := item.TagsOf(dim)
		if len(dimTags) == 0 {
			continue
		}
		refs := make([]tagResponse, 0, len(dimTags))
		for _, tag := range dimTags {
			refs = append(refs, tagResponse{Key: tag.Key, Label: tag.Label})
		}
		tags[dim.String()] = refs
	}

	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price.StringFixed(2),
		IsActive:    item.IsActive,
		Tags:        tags,
	}
}
