package service

import (
	"context"

	"tastebud/internal/domain/entity"
)

// Recommender selects a restaurant and items for a user from a catalog snapshot.
// Implementations call an external model and must not be invoked inside a database transaction.
type Recommender interface {
	// Recommend returns the parsed proposal, ErrRecommenderMalformed when the answer cannot be parsed,
	// or ErrRecommenderUnavailable when the upstream could not be reached.
	Recommend(ctx context.Context, req *entity.RecommendationRequest) (*entity.Proposal, error)
}
