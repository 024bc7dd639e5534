package filmmodule

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/utils"
)

// CreateFilmRequest is the body of POST /films
type CreateFilmRequest struct {
	Title         string  `json:"title" binding:"required,notblank"`
	OriginalTitle *string `json:"originalTitle"`
	ReleaseYear   int     `json:"releaseYear" binding:"required"`
	PosterURL     string  `json:"posterUrl" binding:"required,url"`
	Synopsis      *string `json:"synopsis"`
}

// UpdateFilmRequest is the body of PATCH /films/:id; only present fields change
type UpdateFilmRequest struct {
	Title         *string `json:"title" binding:"omitempty,notblank"`
	OriginalTitle *string `json:"originalTitle"`
	ReleaseYear   *int    `json:"releaseYear"`
	PosterURL     *string `json:"posterUrl" binding:"omitempty,url"`
	Synopsis      *string `json:"synopsis"`
}

func (r UpdateFilmRequest) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Title != nil {
		updates["title"] = strings.TrimSpace(*r.Title)
	}
	if r.OriginalTitle != nil {
		updates["original_title"] = *r.OriginalTitle
	}
	if r.ReleaseYear != nil {
		updates["release_year"] = *r.ReleaseYear
	}
	if r.PosterURL != nil {
		updates["poster_url"] = *r.PosterURL
	}
	if r.Synopsis != nil {
		updates["synopsis"] = *r.Synopsis
	}
	return updates
}

// SyncGenresRequest is the body of PUT /films/:id/genres
type SyncGenresRequest struct {
	GenreIDs []string `json:"genreIds" binding:"required,dive,uuid"`
}

// CreditItem is one entry of SyncCreditsRequest
type CreditItem struct {
	PersonID      string              `json:"personId" binding:"required,uuid"`
	CreditType    database.CreditType `json:"creditType" binding:"required,oneof=ACTOR DIRECTOR"`
	OrderIndex    *int                `json:"orderIndex"`
	CharacterName *string             `json:"characterName"`
}

// SyncCreditsRequest is the body of PUT /films/:id/credits
type SyncCreditsRequest struct {
	Credits []CreditItem `json:"credits" binding:"required,dive"`
}

// SyncResult reports how many links a relation sync stored
type SyncResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Service implements the film catalog operations
type Service struct {
	films  FilmRepository
	logger hclog.Logger
}

// NewService creates the film service
func NewService(films FilmRepository, logger hclog.Logger) *Service {
	return &Service{films: films, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]database.FilmSummary, error) {
	return s.films.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*database.Film, error) {
	return s.films.GetDetail(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *policy.Actor, req CreateFilmRequest) (*database.Film, error) {
	if err := policy.Enforce(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindFilm}); err != nil {
		return nil, err
	}

	title, err := utils.RequiredText("title", req.Title)
	if err != nil {
		return nil, err
	}

	film := &database.Film{
		Title:         title,
		OriginalTitle: req.OriginalTitle,
		ReleaseYear:   req.ReleaseYear,
		PosterURL:     req.PosterURL,
		Synopsis:      req.Synopsis,
	}
	if err := s.films.Create(ctx, film); err != nil {
		return nil, err
	}

	s.logger.Info("film created", "film_id", film.ID, "title", film.Title)
	return film, nil
}

func (s *Service) Update(ctx context.Context, actor *policy.Actor, id string, req UpdateFilmRequest) (*database.Film, error) {
	if err := policy.Enforce(actor, policy.ActionUpdate, policy.Resource{Kind: policy.KindFilm, ID: id}); err != nil {
		return nil, err
	}
	if req.Title != nil {
		if _, err := utils.RequiredText("title", *req.Title); err != nil {
			return nil, err
		}
	}
	return s.films.Update(ctx, id, req.columns())
}

func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id string) error {
	if err := policy.Enforce(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindFilm, ID: id}); err != nil {
		return err
	}
	if err := s.films.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("film deleted", "film_id", id)
	return nil
}

// SyncGenres replaces the film's genres with the resolvable ids in req
func (s *Service) SyncGenres(ctx context.Context, actor *policy.Actor, id string, req SyncGenresRequest) (*SyncResult, error) {
	if err := policy.Enforce(actor, policy.ActionSyncRelations, policy.Resource{Kind: policy.KindFilm, ID: id}); err != nil {
		return nil, err
	}

	count, err := s.films.ReplaceGenres(ctx, id, utils.UniqueIDs(req.GenreIDs))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("film genres synced", "film_id", id, "requested", len(req.GenreIDs), "stored", count)
	return &SyncResult{Success: true, Count: count}, nil
}

// SyncCredits replaces the film's credits with the resolvable entries in req.
// Repeated (person, credit type) pairs keep their first occurrence.
func (s *Service) SyncCredits(ctx context.Context, actor *policy.Actor, id string, req SyncCreditsRequest) (*SyncResult, error) {
	if err := policy.Enforce(actor, policy.ActionSyncRelations, policy.Resource{Kind: policy.KindFilm, ID: id}); err != nil {
		return nil, err
	}

	type creditKey struct {
		personID   string
		creditType database.CreditType
	}
	seen := make(map[creditKey]bool, len(req.Credits))
	credits := make([]database.FilmCredit, 0, len(req.Credits))
	for _, item := range req.Credits {
		key := creditKey{item.PersonID, item.CreditType}
		if seen[key] {
			continue
		}
		seen[key] = true
		credits = append(credits, database.FilmCredit{
			PersonID:      item.PersonID,
			CreditType:    item.CreditType,
			OrderIndex:    item.OrderIndex,
			CharacterName: item.CharacterName,
		})
	}

	count, err := s.films.ReplaceCredits(ctx, id, credits)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("film credits synced", "film_id", id, "requested", len(req.Credits), "stored", count)
	return &SyncResult{Success: true, Count: count}, nil
}
