package personmodule

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/utils"
)

// CreatePersonRequest is the body of POST /people
type CreatePersonRequest struct {
	FullName    string              `json:"fullName" binding:"required,notblank"`
	Bio         *string             `json:"bio"`
	PrimaryRole database.PersonRole `json:"primaryRole" binding:"omitempty,oneof=ACTOR DIRECTOR"`
}

// UpdatePersonRequest is the body of PATCH /people/:id
type UpdatePersonRequest struct {
	FullName    *string              `json:"fullName" binding:"omitempty,notblank"`
	Bio         *string              `json:"bio"`
	PrimaryRole *database.PersonRole `json:"primaryRole" binding:"omitempty,oneof=ACTOR DIRECTOR"`
}

func (r UpdatePersonRequest) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	if r.PrimaryRole != nil {
		updates["primary_role"] = *r.PrimaryRole
	}
	return updates
}

// Service implements operations on people
type Service struct {
	people PersonRepository
	logger hclog.Logger
}

// NewService creates the person service
func NewService(people PersonRepository, logger hclog.Logger) *Service {
	return &Service{people: people, logger: logger}
}

// List returns people filtered by primary role; an empty role lists everyone
func (s *Service) List(ctx context.Context, role database.PersonRole) ([]database.Person, error) {
	return s.people.List(ctx, role)
}

func (s *Service) Get(ctx context.Context, id string) (*database.Person, error) {
	return s.people.Get(ctx, id)
}

func (s *Service) Films(ctx context.Context, id string) ([]database.Film, error) {
	return s.people.Films(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *policy.Actor, req CreatePersonRequest) (*database.Person, error) {
	if err := policy.Enforce(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindPerson}); err != nil {
		return nil, err
	}

	fullName, err := utils.RequiredText("fullName", req.FullName)
	if err != nil {
		return nil, err
	}

	person := &database.Person{
		FullName:    fullName,
		Bio:         req.Bio,
		PrimaryRole: req.PrimaryRole,
	}
	if err := s.people.Create(ctx, person); err != nil {
		return nil, err
	}
	s.logger.Info("person created", "person_id", person.ID, "name", person.FullName)
	return person, nil
}

func (s *Service) Update(ctx context.Context, actor *policy.Actor, id string, req UpdatePersonRequest) (*database.Person, error) {
	if err := policy.Enforce(actor, policy.ActionUpdate, policy.Resource{Kind: policy.KindPerson, ID: id}); err != nil {
		return nil, err
	}
	if req.FullName != nil {
		if _, err := utils.RequiredText("fullName", *req.FullName); err != nil {
			return nil, err
		}
	}
	return s.people.Update(ctx, id, req.columns())
}

func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id string) error {
	if err := policy.Enforce(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindPerson, ID: id}); err != nil {
		return err
	}
	if err := s.people.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("person deleted", "person_id", id)
	return nil
}
