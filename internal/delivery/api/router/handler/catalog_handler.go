package handler

import (
	"net/http"
	"strconv"

	"tastebud/internal/delivery/api/response"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves restaurant discovery, menus, tags and merchant menu editing.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ResolveRestaurants maps external place ids to active restaurants.
func (h *CatalogHandler) ResolveRestaurants(c echo.Context) error {
	var req resolveRestaurantsRequest
	if ok, err := bind(c, &req, "resolve"); !ok {
		return err
	}

	restaurants, err := h.uc.ResolveRestaurants(c.Request().Context(), req.PlaceIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]restaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		out = append(out, toRestaurantResponse(restaurant))
	}

	return response.Success(c, http.StatusOK, out)
}

// NearbyRestaurants lists active restaurants around lat,lng nearest first.
func (h *CatalogHandler) NearbyRestaurants(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return domainerrors.ErrInvalidCoordinates.WithDetails("lat and lng query parameters are required")
	}

	var radiusKm float64
	if raw := c.QueryParam("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return domainerrors.ErrValidationFailed.WithDetails("radius_km must be a positive number")
		}
		radiusKm = parsed
	}

	nearby, err := h.uc.NearbyRestaurants(c.Request().Context(), &usecase.NearbyInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radiusKm,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]restaurantResponse, 0, len(nearby))
	for _, n := range nearby {
		r := toRestaurantResponse(n.Restaurant)
		distance := n.DistanceM
		r.DistanceM = &distance
		out = append(out, r)
	}

	return response.Success(c, http.StatusOK, out)
}

// ListItems returns the active menu of a restaurant.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	restaurantID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListItems(c.Request().Context(), restaurantID)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}

	return response.Success(c, http.StatusOK, out)
}

// ListTags returns the tag vocabulary per dimension.
func (h *CatalogHandler) ListTags(c echo.Context) error {
	grouped, err := h.uc.ListTags(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make(map[string][]tagResponse, len(grouped))
	for dim, tags := range grouped {
		refs := make([]tagResponse, 0, len(tags))
		for _, tag := range tags {
			refs = append(refs, tagResponse{Key: tag.Key, Label: tag.Label})
		}
		out[dim.String()] = refs
	}

	return response.Success(c, http.StatusOK, out)
}

// CreateItem adds an item to a restaurant owned by the calling merchant.
func (h *CatalogHandler) CreateItem(c echo.Context) error {
	merchantID, err := currentUserID(c)
	if err != nil {
		return err
	}
	restaurantID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	var req itemRequest
	if ok, err := bind(c, &req, "item"); !ok {
		return err
	}

	item, err := h.uc.CreateItem(c.Request().Context(), merchantID, restaurantID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toItemResponse(item))
}

// UpdateItem replaces the editable fields and tags of an item.
func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	merchantID, err := currentUserID(c)
	if err != nil {
		return err
	}
	restaurantID, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	itemID, err := int64Param(c, "itemId")
	if err != nil {
		return err
	}

	var req itemRequest
	if ok, err := bind(c, &req, "item"); !ok {
		return err
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), merchantID, restaurantID, itemID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemResponse(item))
}
