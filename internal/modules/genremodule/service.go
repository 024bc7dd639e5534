package genremodule

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/utils"
)

// GenreRequest is the body of POST /genres and PATCH /genres/:id
type GenreRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// Service implements genre operations
type Service struct {
	genres GenreRepository
	logger hclog.Logger
}

// NewService creates the genre service
func NewService(genres GenreRepository, logger hclog.Logger) *Service {
	return &Service{genres: genres, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]database.Genre, error) {
	return s.genres.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*database.Genre, error) {
	return s.genres.Get(ctx, id)
}

func (s *Service) Films(ctx context.Context, id string) ([]database.Film, error) {
	return s.genres.Films(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *policy.Actor, req GenreRequest) (*database.Genre, error) {
	if err := policy.Enforce(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindGenre}); err != nil {
		return nil, err
	}

	name, err := utils.RequiredText("name", req.Name)
	if err != nil {
		return nil, err
	}

	genre := &database.Genre{Name: name}
	if err := s.genres.Create(ctx, genre); err != nil {
		return nil, err
	}
	s.logger.Info("genre created", "genre_id", genre.ID, "name", genre.Name)
	return genre, nil
}

func (s *Service) Update(ctx context.Context, actor *policy.Actor, id string, req GenreRequest) (*database.Genre, error) {
	if err := policy.Enforce(actor, policy.ActionUpdate, policy.Resource{Kind: policy.KindGenre, ID: id}); err != nil {
		return nil, err
	}
	name, err := utils.RequiredText("name", req.Name)
	if err != nil {
		return nil, err
	}
	return s.genres.Rename(ctx, id, name)
}

// Delete removes the genre and unlinks it from every film
func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id string) error {
	if err := policy.Enforce(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindGenre, ID: id}); err != nil {
		return err
	}
	if err := s.genres.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("genre deleted", "genre_id", id)
	return nil
}
