package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"tastebud/config"
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
	"go.uber.org/fx"
)

const defaultMaxCandidates = 20

type recommendationService struct {
	catalogRepo   repository.CatalogRepository
	profileRepo   repository.ProfileRepository
	prefRepo      repository.PreferenceRepository
	recommender   service.Recommender
	orders        usecase.OrderUsecase
	maxCandidates int
	logger        *slog.Logger
}

// RecommendationServiceParams holds dependencies for RecommendationService, injected by Fx.
type RecommendationServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	ProfileRepo repository.ProfileRepository
	PrefRepo    repository.PreferenceRepository
	Recommender service.Recommender
	Orders      usecase.OrderUsecase
	Config      *config.Config
	Logger      *slog.Logger
}

// NewRecommendationService is the constructor for recommendationService.
func NewRecommendationService(params RecommendationServiceParams) usecase.RecommendationUsecase {
	maxCandidates := defaultMaxCandidates
	if params.Config != nil && params.Config.AutoOrder != nil && params.Config.AutoOrder.MaxCandidates > 0 {
		maxCandidates = params.Config.AutoOrder.MaxCandidates
	}

	return &recommendationService{
		catalogRepo:   params.CatalogRepo,
		profileRepo:   params.ProfileRepo,
		prefRepo:      params.PrefRepo,
		recommender:   params.Recommender,
		orders:        params.Orders,
		maxCandidates: maxCandidates,
		logger:        params.Logger,
	}
}

func (srv *recommendationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AutoOrder never holds a transaction open while the recommender is working:
// all reads finish before the call and the order is written only after validation.
func (srv *recommendationService) AutoOrder(ctx context.Context, userID uuid.UUID, restaurantIDs []int64) (*usecase.AutoOrderResult, error) {
	candidates := uniqueIDs(restaurantIDs)
	if len(candidates) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("restaurant_ids must not be empty")
	}
	if len(candidates) > srv.maxCandidates {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("at most %d candidate restaurants are allowed", srv.maxCandidates))
	}

	req, err := srv.bundle(ctx, userID, candidates)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Requesting recommendation",
		slog.Any("userID", userID),
		slog.Int("candidates", len(req.Restaurants)),
	)

	proposal, err := srv.recommender.Recommend(ctx, req)
	if err != nil {
		srv.log(ctx).Warn("Recommender failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return srv.CommitRecommendation(ctx, userID, candidates, proposal)
}

// bundle assembles the recommender payload from the user's profile and the active candidate menus.
func (srv *recommendationService) bundle(ctx context.Context, userID uuid.UUID, candidates []int64) (*entity.RecommendationRequest, error) {
	var entries []*entity.PreferenceEntry
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, domainerrors.ErrProfileNotFound):
		profile = nil
	case err != nil:
		return nil, errors.Wrap(err, "failed to load profile")
	default:
		entries, err = srv.prefRepo.ListByProfile(ctx, profile.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load preferences")
		}
	}

	restaurants, err := srv.catalogRepo.FindActiveRestaurantsByIDs(ctx, candidates)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate restaurants")
	}
	if len(restaurants) == 0 {
		return nil, domainerrors.ErrNoCandidateRestaurants
	}

	activeIDs := make([]int64, 0, len(restaurants))
	for _, restaurant := range restaurants {
		activeIDs = append(activeIDs, restaurant.ID)
	}

	menus, err := srv.catalogRepo.ListActiveItems(ctx, activeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate menus")
	}

	return &entity.RecommendationRequest{
		User:        BuildUserContext(profile, entries),
		Restaurants: BuildCatalogSnapshot(restaurants, menus),
	}, nil
}

func (srv *recommendationService) CommitRecommendation(
	ctx context.Context,
	userID uuid.UUID,
	candidateIDs []int64,
	proposal *entity.Proposal,
) (*usecase.AutoOrderResult, error) {
	if proposal == nil {
		return nil, domainerrors.ErrRecommenderMalformed.WithDetails("empty proposal")
	}

	if !slices.Contains(candidateIDs, proposal.RestaurantID) {
		err := domainerrors.ErrRecommendationInvalidRestaurant.WithDetails(
			fmt.Sprintf("restaurant %d is not among the candidates %v", proposal.RestaurantID, candidateIDs))
		srv.reject(ctx, userID, proposal.RestaurantID, err)

		return nil, err
	}

	lines, err := srv.cleanLines(ctx, proposal)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		err := domainerrors.ErrRecommendationNoValidItems.WithDetails(
			fmt.Sprintf("none of the %d proposed items is orderable at restaurant %d", len(proposal.Items), proposal.RestaurantID))
		srv.reject(ctx, userID, proposal.RestaurantID, err)

		return nil, err
	}

	result, err := srv.orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{
		RestaurantID: proposal.RestaurantID,
		Lines:        lines,
		Source:       constants.OrderSourceAuto,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.AutoOrderResult{OrderResult: result, Comment: proposal.Comment}, nil
}

// cleanLines drops proposed items that do not resolve to an orderable item of the chosen restaurant
// and lines with an explicit non-positive quantity. A missing quantity means one.
func (srv *recommendationService) cleanLines(ctx context.Context, proposal *entity.Proposal) ([]entity.OrderLine, error) {
	ids := make([]int64, 0, len(proposal.Items))
	for _, proposed := range proposal.Items {
		ids = append(ids, proposed.ItemID)
	}

	found, err := srv.catalogRepo.FindItemsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve proposed items")
	}

	resolvable := make(map[int64]bool, len(found))
	for _, item := range found {
		if item.RestaurantID == proposal.RestaurantID && item.IsOrderable() {
			resolvable[item.ID] = true
		}
	}

	lines := make([]entity.OrderLine, 0, len(proposal.Items))
	dropped := 0
	for _, proposed := range proposal.Items {
		quantity := 1
		if proposed.Quantity != nil {
			quantity = *proposed.Quantity
		}
		if !resolvable[proposed.ItemID] || quantity < 1 {
			dropped++

			continue
		}
		lines = append(lines, entity.OrderLine{ItemID: proposed.ItemID, Quantity: quantity})
	}

	if dropped > 0 {
		metrics.RecommendationItemsDropped.Add(float64(dropped))
		srv.log(ctx).Info("Dropped unusable proposed items",
			slog.Int64("restaurantID", proposal.RestaurantID),
			slog.Int("dropped", dropped),
			slog.Int("kept", len(lines)),
		)
	}

	return lines, nil
}

func (srv *recommendationService) reject(ctx context.Context, userID uuid.UUID, restaurantID int64, err *domainerrors.BaseError) {
	metrics.OrdersRejected.WithLabelValues(err.ErrorCode()).Inc()
	srv.log(ctx).Warn("Recommendation rejected",
		slog.Any("userID", userID),
		slog.Int64("restaurantID", restaurantID),
		slog.String("code", err.ErrorCode()),
		slog.String("details", err.Details()),
	)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
