package handler

import (
	"net/http"
	"strconv"

	"tastebud/internal/delivery/api/response"
	"tastebud/internal/domain/constants"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves manual and AI order placement and the order history.
type OrderHandler struct {
	orders          usecase.OrderUsecase
	recommendations usecase.RecommendationUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orders usecase.OrderUsecase, recommendations usecase.RecommendationUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, recommendations: recommendations}
}

// CreateOrder places a manual order.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if ok, err := bind(c, &req, "order"); !ok {
		return err
	}

	lines := make([]entity.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, entity.OrderLine{ItemID: item.ItemID, Quantity: item.Quantity})
	}

	result, err := h.orders.CreateOrder(c.Request().Context(), userID, &usecase.CreateOrderInput{
		RestaurantID: req.RestaurantID,
		Lines:        lines,
		Source:       constants.OrderSourceManual,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &createOrderResponse{
		OrderID:      result.Order.ID,
		TotalPrice:   result.Order.TotalPrice.StringFixed(2),
		UpdatedPrefs: result.UpdatedPrefs,
	})
}

// AutoOrder asks the recommender to pick an order among the given restaurants and places it.
func (h *OrderHandler) AutoOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req autoOrderRequest
	if ok, err := bind(c, &req, "auto order"); !ok {
		return err
	}

	result, err := h.recommendations.AutoOrder(c.Request().Context(), userID, req.RestaurantIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	order := result.Order

	return response.Success(c, http.StatusCreated, &autoOrderResponse{
		OrderID:        order.ID,
		RestaurantID:   order.RestaurantID,
		RestaurantName: order.RestaurantName,
		Items:          toOrderLines(order.Items),
		TotalPrice:     order.TotalPrice.StringFixed(2),
		AIComment:      result.Comment,
	})
}

// ListOrders pages through the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	input := &usecase.ListOrdersInput{}
	if input.Limit, err = queryInt(c, "limit"); err != nil {
		return err
	}
	if input.Offset, err = queryInt(c, "offset"); err != nil {
		return err
	}

	orders, err := h.orders.ListOrders(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]*orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return response.Success(c, http.StatusOK, out)
}

// GetOrder returns one of the caller's orders with its lines.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// CancelOrder cancels a pending order.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.CancelOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// PickupQR renders the pickup code of a pending order as PNG.
func (h *OrderHandler) PickupQR(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	png, err := h.orders.PickupQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + " must be a non-negative integer")
	}

	return n, nil
}
