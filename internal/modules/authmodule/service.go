package authmodule

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Service registers users, issues tokens and resolves tokens to actors
type Service struct {
	users      UserRepository
	tokens     *TokenManager
	bcryptCost int
	logger     hclog.Logger
}

// NewService creates the auth service
func NewService(users UserRepository, tokens *TokenManager, bcryptCost int, logger hclog.Logger) *Service {
	return &Service{users: users, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Register creates a USER account
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*database.User, error) {
	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, types.NewInternalError("failed to hash password", err)
	}

	user := &database.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         database.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if types.IsNotFound(err) {
			return nil, types.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, types.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, types.NewInternalError("failed to issue token", err)
	}
	return &LoginResponse{AccessToken: token}, nil
}

// Me returns the account behind actor
func (s *Service) Me(ctx context.Context, actor *policy.Actor) (*database.User, error) {
	if actor == nil {
		return nil, types.NewUnauthorizedError("Unauthorized")
	}
	return s.users.FindByID(ctx, actor.ID)
}

// VerifyToken implements middleware.TokenVerifier. The user is re-read so
// role changes and deletions apply to tokens already issued.
func (s *Service) VerifyToken(ctx context.Context, token string) (*policy.Actor, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug("token rejected", "error", err)
		return nil, types.NewUnauthorizedError("Unauthorized")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, types.NewUnauthorizedError("Unauthorized")
		}
		return nil, err
	}
	return &policy.Actor{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
