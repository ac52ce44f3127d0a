package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/constants"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"
	"tastebud/internal/infra/metrics"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

type orderService struct {
	txManager   repository.TransactionManager
	catalogRepo repository.CatalogRepository
	orderRepo   repository.OrderRepository
	scoring     *ScoringEngine
	publisher   service.EventPublisher
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CatalogRepo repository.CatalogRepository
	OrderRepo   repository.OrderRepository
	Scoring     *ScoringEngine
	Publisher   service.EventPublisher
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		catalogRepo: params.CatalogRepo,
		orderRepo:   params.OrderRepo,
		scoring:     params.Scoring,
		publisher:   params.Publisher,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*usecase.OrderResult, error) {
	lines, restaurant, items, err := srv.validate(ctx, input)
	if err != nil {
		srv.reject(ctx, userID, input.RestaurantID, err)

		return nil, err
	}

	order := &entity.Order{
		UserID:         userID,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		Status:         entity.OrderStatusPending,
		TotalPrice:     decimal.Zero,
	}

	var updatedPrefs bool
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		total := decimal.Zero
		for _, line := range lines {
			item := items[line.ItemID]
			orderItem := entity.OrderItem{
				OrderID:      order.ID,
				ItemID:       item.ID,
				ItemName:     item.Name,
				Quantity:     line.Quantity,
				PriceAtOrder: item.Price,
			}
			if err := orderRepo.AddLine(ctx, &orderItem); err != nil {
				return errors.Wrapf(err, "failed to add line for item %d", item.ID)
			}
			total = total.Add(orderItem.LineTotal())
			order.Items = append(order.Items, orderItem)
		}

		if err := orderRepo.UpdateTotal(ctx, order.ID, total); err != nil {
			return errors.Wrap(err, "failed to persist order total")
		}
		order.TotalPrice = total

		updated, err := srv.scoring.ApplyOrderToPreferences(ctx, repoFactory, order, items)
		if err != nil {
			return errors.Wrap(err, "failed to update preferences")
		}
		updatedPrefs = updated

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Order transaction rolled back",
			slog.Any("userID", userID),
			slog.Int64("restaurantID", restaurant.ID),
			slog.Any("error", err),
		)

		return nil, err
	}

	source := input.Source
	if source == "" {
		source = constants.OrderSourceManual
	}
	metrics.OrdersCreated.WithLabelValues(source).Inc()

	srv.log(ctx).Info("Order placed",
		slog.Int64("orderID", order.ID),
		slog.Any("userID", userID),
		slog.Int64("restaurantID", restaurant.ID),
		slog.String("total", order.TotalPrice.StringFixed(2)),
		slog.Bool("updatedPrefs", updatedPrefs),
		slog.String("source", source),
	)

	srv.publishOrderPlaced(ctx, order, source, updatedPrefs)

	return &usecase.OrderResult{Order: order, UpdatedPrefs: updatedPrefs}, nil
}

// validate runs every precondition before the transaction opens. Reads are pinned to the primary
// by the catalog repository. Duplicate item ids are merged into one line.
func (srv *orderService) validate(
	ctx context.Context,
	input *usecase.CreateOrderInput,
) ([]entity.OrderLine, *entity.Restaurant, map[int64]*entity.Item, error) {
	lines, err := mergeLines(input.Lines)
	if err != nil {
		return nil, nil, nil, err
	}

	restaurant, err := srv.catalogRepo.FindRestaurantByID(ctx, input.RestaurantID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRestaurantNotFound) {
			return nil, nil, nil, domainerrors.ErrRestaurantUnavailable.WithDetails(fmt.Sprintf("restaurant %d does not exist", input.RestaurantID))
		}

		return nil, nil, nil, errors.Wrap(err, "failed to load restaurant")
	}
	if !restaurant.IsActive {
		return nil, nil, nil, domainerrors.ErrRestaurantUnavailable.WithDetails(fmt.Sprintf("restaurant %d is not active", restaurant.ID))
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}

	found, err := srv.catalogRepo.FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load items")
	}

	items := make(map[int64]*entity.Item, len(found))
	for _, item := range found {
		items[item.ID] = item
	}

	for _, line := range lines {
		item, ok := items[line.ItemID]
		if !ok {
			return nil, nil, nil, domainerrors.ErrItemUnavailable.WithDetails(fmt.Sprintf("item %d does not exist", line.ItemID))
		}
		if item.RestaurantID != restaurant.ID {
			return nil, nil, nil, domainerrors.ErrCrossRestaurantOrder.WithDetails(
				fmt.Sprintf("item %d belongs to restaurant %d, not %d", item.ID, item.RestaurantID, restaurant.ID))
		}
		if !item.IsOrderable() {
			return nil, nil, nil, domainerrors.ErrItemUnavailable.WithDetails(fmt.Sprintf("item %d is not active", item.ID))
		}
	}

	return lines, restaurant, items, nil
}

// mergeLines rejects empty requests and non-positive quantities, and sums repeated item ids
// keeping the order in which items first appear.
func mergeLines(lines []entity.OrderLine) ([]entity.OrderLine, error) {
	if len(lines) == 0 {
		return nil, domainerrors.ErrOrderEmpty
	}

	merged := make([]entity.OrderLine, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, domainerrors.ErrInvalidQuantity.WithDetails(fmt.Sprintf("item %d has quantity %d", line.ItemID, line.Quantity))
		}
		if i, ok := index[line.ItemID]; ok {
			merged[i].Quantity += line.Quantity

			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}

	return merged, nil
}

func (srv *orderService) reject(ctx context.Context, userID uuid.UUID, restaurantID int64, err error) {
	code := "INTERNAL_ERROR"
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.ErrorCode()
	}
	metrics.OrdersRejected.WithLabelValues(code).Inc()

	srv.log(ctx).Warn("Order rejected",
		slog.Any("userID", userID),
		slog.Int64("restaurantID", restaurantID),
		slog.String("code", code),
		slog.Any("error", err),
	)
}

// publishOrderPlaced announces a committed order. Failures are logged and never surface to the caller.
func (srv *orderService) publishOrderPlaced(ctx context.Context, order *entity.Order, source string, updatedPrefs bool) {
	event := &service.OrderPlacedEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:      order.ID,
		UserID:       order.UserID.String(),
		RestaurantID: order.RestaurantID,
		TotalPrice:   order.TotalPrice.StringFixed(2),
		ItemCount:    len(order.Items),
		Source:       source,
		UpdatedPrefs: updatedPrefs,
	}

	if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order placed event",
			slog.Int64("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}

// GetOrder returns one of the user's orders. Orders of other users are reported as not found.
func (srv *orderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID int64) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID, input *usecase.ListOrdersInput) ([]*entity.Order, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	limit = min(limit, maxOrderPageSize)
	offset := max(input.Offset, 0)

	return srv.orderRepo.ListByUser(ctx, userID, limit, offset)
}

func (srv *orderService) CancelOrder(ctx context.Context, userID uuid.UUID, orderID int64) (*entity.Order, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	moved, err := srv.orderRepo.TransitionStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domainerrors.ErrOrderNotCancellable.WithDetails(fmt.Sprintf("order %d is %s", order.ID, order.Status))
	}

	metrics.OrdersCancelled.Inc()
	srv.log(ctx).Info("Order cancelled", slog.Int64("orderID", order.ID), slog.Any("userID", userID))

	order.Status = entity.OrderStatusCancelled

	return order, nil
}

func (srv *orderService) PickupQR(ctx context.Context, userID uuid.UUID, orderID int64) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domainerrors.ErrConflict.WithDetails(fmt.Sprintf("order %d is %s and cannot be picked up", order.ID, order.Status))
	}

	png, err := srv.qrService.GeneratePickupQR(order.ID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate pickup code")
	}

	return png, nil
}
