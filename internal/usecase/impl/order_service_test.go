package impl

import (
	"bytes"
	"context"
	"testing"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/service"
	"tastebud/internal/infra/persistence/model"
	"tastebud/internal/infra/persistence/postgres"
	mockSvc "tastebud/internal/mocks/service"
	"tastebud/internal/testutil/dbtest"
	"tastebud/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertNoOrderWrites(t *testing.T, db *gorm.DB) {
	t.Helper()

	assert.Zero(t, dbtest.Count(t, db, &model.OrderModel{}))
	assert.Zero(t, dbtest.Count(t, db, &model.OrderItemModel{}))
	assert.Zero(t, dbtest.Count(t, db, &model.PreferenceEntryModel{}))
}

func TestOrderService_ScenarioA_TotalAndCuisineScore(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))

	result, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: m.restaurant,
		Lines:        lines(m.i1, 2, m.i2, 1),
	})
	require.NoError(t, err)

	assert.True(t, result.UpdatedPrefs)
	assert.Equal(t, "25.00", result.Order.TotalPrice.StringFixed(2))
	assert.Equal(t, entity.OrderStatusPending, result.Order.Status)
	require.Len(t, result.Order.Items, 2)

	score, ok := dbtest.Score(t, db, userID, m.chinese.ID)
	require.True(t, ok)
	assert.Equal(t, 2, score)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.PreferenceEntryModel{}))

	stored, err := postgres.NewOrderRepository(db).FindByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", stored.TotalPrice.StringFixed(2))
	assert.Len(t, stored.Items, 2)
}

func TestOrderService_ScenarioB_NoProfileSkipsScoring(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, false)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))

	result, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: m.restaurant,
		Lines:        lines(m.i1, 2, m.i2, 1),
	})
	require.NoError(t, err)

	assert.False(t, result.UpdatedPrefs)
	assert.Equal(t, "25.00", result.Order.TotalPrice.StringFixed(2))
	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.OrderModel{}))
	assert.Zero(t, dbtest.Count(t, db, &model.PreferenceEntryModel{}))
}

func TestOrderService_TagFanOutAcrossOneDimension(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, true)
	chinese := dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")
	japanese := dbtest.Tag(t, db, entity.DimensionCuisine, "japanese")
	restaurant := dbtest.Restaurant(t, db, "Fusion House", true, 35.68, 139.69)
	item := dbtest.Item(t, db, restaurant, "Ramen Dumplings", "12.00", true, chinese, japanese)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))

	_, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: restaurant,
		Lines:        lines(item, 3),
	})
	require.NoError(t, err)

	for _, tag := range []entity.Tag{chinese, japanese} {
		score, ok := dbtest.Score(t, db, userID, tag.ID)
		require.True(t, ok, tag.Key)
		assert.Equal(t, 3, score, tag.Key)
	}
	assert.EqualValues(t, 2, dbtest.Count(t, db, &model.PreferenceEntryModel{}))
}

func TestOrderService_TagFanOutIncludesSpiciness(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, true)
	hot := dbtest.Tag(t, db, entity.DimensionSpiciness, "hot")
	beef := dbtest.Tag(t, db, entity.DimensionProtein, "beef")
	main := dbtest.Tag(t, db, entity.DimensionMealType, "main")
	restaurant := dbtest.Restaurant(t, db, "Sichuan Kitchen", true, 30.66, 104.07)
	item := dbtest.Item(t, db, restaurant, "Boiled Beef", "15.50", true, hot, beef, main)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))

	_, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: restaurant,
		Lines:        lines(item, 2),
	})
	require.NoError(t, err)

	for _, tag := range []entity.Tag{hot, beef, main} {
		score, ok := dbtest.Score(t, db, userID, tag.ID)
		require.True(t, ok, tag.Key)
		assert.Equal(t, 2, score, tag.Key)
	}
}

func TestOrderService_ScoresAccumulateAcrossOrders(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))
	ctx := context.Background()

	_, err := orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 2)})
	require.NoError(t, err)
	_, err = orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 3)})
	require.NoError(t, err)

	score, ok := dbtest.Score(t, db, userID, m.chinese.ID)
	require.True(t, ok)
	assert.Equal(t, 5, score)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.PreferenceEntryModel{}))
}

func TestOrderService_ScoringFailureRollsBackEverything(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, true)
	chinese := dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")
	umami := dbtest.Tag(t, db, entity.DimensionFlavor, "umami")
	restaurant := dbtest.Restaurant(t, db, "Golden Dragon", true, 25.03, 121.56)
	item := dbtest.Item(t, db, restaurant, "Mapo Tofu", "9.00", true, chinese, umami)

	// The first upsert lands, the second fails: nothing of the attempt may survive.
	txManager := &failingScoreTxManager{inner: postgres.NewTransactionManager(db), failAt: 2}
	publisher := mockSvc.NewMockEventPublisher(t)
	orders := newOrderService(db, txManager, publisher)

	_, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: restaurant,
		Lines:        lines(item, 1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preference store unavailable")

	assertNoOrderWrites(t, db)
	publisher.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
}

func TestOrderService_CrossRestaurantRejectedWithoutWrites(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	orders := newOrderService(db, postgres.NewTransactionManager(db), mockSvc.NewMockEventPublisher(t))

	_, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: m.restaurant,
		Lines:        lines(m.i1, 1, m.j1, 1),
	})
	assert.ErrorIs(t, err, domainerrors.ErrCrossRestaurantOrder)
	assertNoOrderWrites(t, db)
}

func TestOrderService_ValidationRejections(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	closed := dbtest.Restaurant(t, db, "Closed Diner", false, 25.0, 121.0)
	closedItem := dbtest.Item(t, db, closed, "Pancakes", "6.00", true)
	retired := dbtest.Item(t, db, m.restaurant, "Retired Dish", "8.00", false)
	orders := newOrderService(db, postgres.NewTransactionManager(db), mockSvc.NewMockEventPublisher(t))

	tests := []struct {
		name  string
		input *usecase.CreateOrderInput
		want  error
	}{
		{"empty", &usecase.CreateOrderInput{RestaurantID: m.restaurant}, domainerrors.ErrOrderEmpty},
		{"zero quantity", &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 0)}, domainerrors.ErrInvalidQuantity},
		{"negative quantity", &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 1, m.i2, -2)}, domainerrors.ErrInvalidQuantity},
		{"unknown restaurant", &usecase.CreateOrderInput{RestaurantID: 999999, Lines: lines(m.i1, 1)}, domainerrors.ErrRestaurantUnavailable},
		{"inactive restaurant", &usecase.CreateOrderInput{RestaurantID: closed, Lines: lines(closedItem, 1)}, domainerrors.ErrRestaurantUnavailable},
		{"unknown item", &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 1, 999999, 1)}, domainerrors.ErrItemUnavailable},
		{"inactive item", &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(retired, 1)}, domainerrors.ErrItemUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orders.CreateOrder(context.Background(), userID, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assertNoOrderWrites(t, db)
}

func TestOrderService_DuplicateItemsAreMerged(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))

	result, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: m.restaurant,
		Lines:        lines(m.i1, 1, m.i2, 1, m.i1, 2),
	})
	require.NoError(t, err)

	require.Len(t, result.Order.Items, 2)
	assert.Equal(t, m.i1, result.Order.Items[0].ItemID)
	assert.Equal(t, 3, result.Order.Items[0].Quantity)
	assert.Equal(t, "35.00", result.Order.TotalPrice.StringFixed(2))

	score, _ := dbtest.Score(t, db, userID, m.chinese.ID)
	assert.Equal(t, 3, score)
}

func TestOrderService_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))
	ctx := context.Background()

	result, err := orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 1)})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.ItemModel{}).Where("id = ?", m.i1).Update("price", "12.00").Error)

	stored, err := orders.GetOrder(ctx, userID, result.Order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "10.00", stored.Items[0].PriceAtOrder.StringFixed(2))
	assert.Equal(t, "10.00", stored.TotalPrice.StringFixed(2))
}

func TestOrderService_PublishesAfterCommitAndIgnoresPublishFailure(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishOrderPlaced(mock.Anything, mock.MatchedBy(func(event *service.OrderPlacedEvent) bool {
			return event.UserID == userID.String() &&
				event.RestaurantID == m.restaurant &&
				event.TotalPrice == "25.00" &&
				event.ItemCount == 2 &&
				event.Source == "manual" &&
				event.UpdatedPrefs
		})).
		Return(errors.New("broker down")).
		Once()
	orders := newOrderService(db, postgres.NewTransactionManager(db), publisher)

	result, err := orders.CreateOrder(context.Background(), userID, &usecase.CreateOrderInput{
		RestaurantID: m.restaurant,
		Lines:        lines(m.i1, 2, m.i2, 1),
	})
	require.NoError(t, err)
	assert.NotZero(t, result.Order.ID)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.OrderModel{}))
}

func TestOrderService_HistoryCancelAndPickup(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	strangerID := dbtest.User(t, db, true)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))
	ctx := context.Background()

	first, err := orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 1)})
	require.NoError(t, err)
	second, err := orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.other, Lines: lines(m.j1, 2)})
	require.NoError(t, err)

	history, err := orders.ListOrders(ctx, userID, &usecase.ListOrdersInput{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.Order.ID, history[0].ID)
	assert.Equal(t, "Taco Stand", history[0].RestaurantName)

	_, err = orders.GetOrder(ctx, strangerID, first.Order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	png, err := orders.PickupQR(ctx, userID, first.Order.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	cancelled, err := orders.CancelOrder(ctx, userID, first.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)

	_, err = orders.CancelOrder(ctx, userID, first.Order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotCancellable)

	_, err = orders.PickupQR(ctx, userID, first.Order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	// Cancelling keeps the accumulated preference.
	score, _ := dbtest.Score(t, db, userID, m.chinese.ID)
	assert.Equal(t, 1, score)
}
