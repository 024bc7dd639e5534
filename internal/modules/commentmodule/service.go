package commentmodule

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/events"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
)

// CommentRequest is the body of POST /films/:id/comments
type CommentRequest struct {
	CommentText string `json:"commentText" binding:"required"`
}

// Service implements audience comments
type Service struct {
	comments  CommentRepository
	publisher events.Publisher
	logger    hclog.Logger
}

// NewService creates the comment service. A nil publisher disables the
// live feed.
func NewService(comments CommentRepository, publisher events.Publisher, logger hclog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{comments: comments, publisher: publisher, logger: logger}
}

func (s *Service) ListByFilm(ctx context.Context, filmID string) ([]database.Comment, error) {
	return s.comments.ListByFilm(ctx, filmID)
}

// Create posts a comment as actor
func (s *Service) Create(ctx context.Context, actor *policy.Actor, filmID string, req CommentRequest) (*database.Comment, error) {
	if err := policy.Enforce(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindComment}); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.CommentText)
	if text == "" {
		return nil, types.NewValidationError("request validation failed", "commentText is required")
	}

	comment, err := s.comments.Create(ctx, &database.Comment{
		FilmID:      filmID,
		AuthorID:    actor.ID,
		CommentText: text,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(events.NewCommentEvent(events.EventCommentCreated, filmID, comment))
	s.logger.Debug("comment created", "comment_id", comment.ID, "film_id", filmID)
	return comment, nil
}

// Delete removes a comment. Only its author or an admin may do so.
func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id string) error {
	// Anonymous callers are rejected before the comment is looked up.
	if actor == nil {
		return types.NewUnauthorizedError("Unauthorized")
	}

	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}

	resource := policy.Resource{Kind: policy.KindComment, ID: id, OwnerID: comment.AuthorID}
	if err := policy.Enforce(actor, policy.ActionDelete, resource); err != nil {
		s.logger.Info("comment delete denied", "comment_id", id, "actor_id", actor.ID)
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(events.NewCommentEvent(events.EventCommentDeleted, comment.FilmID, map[string]string{"id": id}))
	s.logger.Debug("comment deleted", "comment_id", id, "actor_id", actor.ID)
	return nil
}
