package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/infra/qrcode"
	mockSvc "tastebud/internal/mocks/service"
	"tastebud/internal/testutil/dbtest"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// quietPublisher accepts every event.
func quietPublisher(t *testing.T) *mockSvc.MockEventPublisher {
	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishOrderPlaced(mock.Anything, mock.Anything).Return(nil).Maybe()

	return publisher
}

func newOrderService(db *gorm.DB, txManager repository.TransactionManager, publisher service.EventPublisher) usecase.OrderUsecase {
	logger := newDiscardLogger()

	return NewOrderService(OrderServiceParams{
		TxManager:   txManager,
		CatalogRepo: postgres.NewCatalogRepository(db),
		OrderRepo:   postgres.NewOrderRepository(db),
		Scoring:     NewScoringEngine(logger),
		Publisher:   publisher,
		QRService:   qrcode.NewQRCodeService(128, "M"),
		Logger:      logger,
	})
}

// menu is the catalog used by the ordering scenarios: restaurant R with
// I1 ($10.00, cuisine chinese) and I2 ($5.00, untagged), plus restaurant S with J1.
type menu struct {
	restaurant int64
	other      int64
	i1, i2     int64
	j1         int64
	chinese    entity.Tag
}

func seedMenu(t *testing.T, db *gorm.DB) menu {
	t.Helper()

	m := menu{chinese: dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")}
	m.restaurant = dbtest.Restaurant(t, db, "Golden Dragon", true, 25.0330, 121.5654)
	m.other = dbtest.Restaurant(t, db, "Taco Stand", true, 25.0340, 121.5640)
	m.i1 = dbtest.Item(t, db, m.restaurant, "Kung Pao Chicken", "10.00", true, m.chinese)
	m.i2 = dbtest.Item(t, db, m.restaurant, "Steamed Rice", "5.00", true)
	m.j1 = dbtest.Item(t, db, m.other, "Al Pastor Taco", "3.50", true, dbtest.Tag(t, db, entity.DimensionCuisine, "mexican"))

	return m
}

func lines(pairs ...int64) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, entity.OrderLine{ItemID: pairs[i], Quantity: int(pairs[i+1])})
	}

	return out
}

// failingScoreTxManager wraps a real transaction manager so that the n-th preference upsert fails.
type failingScoreTxManager struct {
	inner  repository.TransactionManager
	failAt int
}

func (m *failingScoreTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.inner.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return fn(&failingScoreFactory{RepositoryFactory: factory, failAt: m.failAt})
	})
}

type failingScoreFactory struct {
	repository.RepositoryFactory
	failAt int
}

func (f *failingScoreFactory) NewPreferenceRepository() repository.PreferenceRepository {
	return &failingPreferenceRepository{PreferenceRepository: f.RepositoryFactory.NewPreferenceRepository(), failAt: f.failAt}
}

type failingPreferenceRepository struct {
	repository.PreferenceRepository
	failAt int
	calls  int
}

func (r *failingPreferenceRepository) AddScore(ctx context.Context, profileID uuid.UUID, tag entity.Tag, delta int) error {
	r.calls++
	if r.calls >= r.failAt {
		return errors.New("preference store unavailable")
	}

	return r.PreferenceRepository.AddScore(ctx, profileID, tag, delta)
}
