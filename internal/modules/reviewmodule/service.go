package reviewmodule

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/policy"
)

// ReviewRequest is the body of POST /films/:id/reviews
type ReviewRequest struct {
	Rating     *int   `json:"rating" binding:"required,min=0,max=10"`
	ReviewText string `json:"reviewText" binding:"required"`
}

// Service implements curator reviews
type Service struct {
	reviews ReviewRepository
	logger  hclog.Logger
}

// NewService creates the review service
func NewService(reviews ReviewRepository, logger hclog.Logger) *Service {
	return &Service{reviews: reviews, logger: logger}
}

func (s *Service) ListByFilm(ctx context.Context, filmID string) ([]database.Review, error) {
	return s.reviews.ListByFilm(ctx, filmID)
}

// Upsert creates or replaces the actor's review of filmID
func (s *Service) Upsert(ctx context.Context, actor *policy.Actor, filmID string, req ReviewRequest) (*database.Review, error) {
	if err := policy.Enforce(actor, policy.ActionUpsert, policy.Resource{Kind: policy.KindReview}); err != nil {
		return nil, err
	}

	review, err := s.reviews.Upsert(ctx, &database.Review{
		FilmID:     filmID,
		AuthorID:   actor.ID,
		Rating:     *req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review stored", "review_id", review.ID, "film_id", filmID, "rating", review.Rating)
	return review, nil
}

func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id string) error {
	if err := policy.Enforce(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindReview, ID: id}); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}
