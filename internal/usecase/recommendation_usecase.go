package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// AutoOrderResult is an order placed from a recommender proposal, with the proposal's comment.
type AutoOrderResult struct {
	*OrderResult
	Comment string
}

// RecommendationUsecase turns a recommender proposal into a real order.
type RecommendationUsecase interface {
	// AutoOrder bundles the user's context and the candidate restaurants, asks the recommender
	// for a selection and commits it.
	AutoOrder(ctx context.Context, userID uuid.UUID, restaurantIDs []int64) (*AutoOrderResult, error)
	// CommitRecommendation validates a proposal against the candidate set and places the cleaned order.
	CommitRecommendation(ctx context.Context, userID uuid.UUID, candidateIDs []int64, proposal *entity.Proposal) (*AutoOrderResult, error)
}
