package impl

import (
	"context"
	"log/slog"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/metrics"

	"github.com/pkg/errors"
)

// ScoringEngine folds placed orders into the preference ledger.
// It is not idempotent: it must run exactly once per order, inside the transaction that creates the order.
type ScoringEngine struct {
	logger *slog.Logger
}

// NewScoringEngine is the constructor for ScoringEngine.
func NewScoringEngine(logger *slog.Logger) *ScoringEngine {
	return &ScoringEngine{logger: logger}
}

// ApplyOrderToPreferences adds each line's quantity to the score of every tag of the line's item,
// across all seven dimensions. items must hold every item referenced by the order.
// A user without a profile is skipped and reported as not updated.
func (e *ScoringEngine) ApplyOrderToPreferences(
	ctx context.Context,
	repos repository.RepositoryFactory,
	order *entity.Order,
	items map[int64]*entity.Item,
) (bool, error) {
	profile, err := repos.NewProfileRepository().FindByUserID(ctx, order.UserID)
	if errors.Is(err, domainerrors.ErrProfileNotFound) {
		deliverycontext.GetLoggerOrDefault(ctx, e.logger).Debug("User has no profile, skipping preference update",
			slog.Any("userID", order.UserID),
			slog.Int64("orderID", order.ID),
		)

		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to load profile for scoring")
	}

	prefRepo := repos.NewPreferenceRepository()
	upserts := make(map[entity.Dimension]int)

	for _, line := range order.Items {
		item, ok := items[line.ItemID]
		if !ok {
			return false, errors.Errorf("item %d missing from scoring input", line.ItemID)
		}

		for _, tag := range item.AllTags() {
			if err := prefRepo.AddScore(ctx, profile.UserID, tag, line.Quantity); err != nil {
				return false, errors.Wrapf(err, "failed to add score for tag %d", tag.ID)
			}
			upserts[tag.Dimension]++
		}
	}

	for dim, n := range upserts {
		metrics.PreferenceUpserts.WithLabelValues(dim.String()).Add(float64(n))
	}

	return true, nil
}
