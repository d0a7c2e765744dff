package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/UmangSachdeva/BudgetX/helpers"
	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/store"
)

const tokenType = "bearer"

// TokenIssuer signs and verifies access tokens carrying a user id.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type UserService struct {
	users  store.UserStore
	tokens TokenIssuer
	now    func() time.Time
}

func NewUserService(users store.UserStore, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens, now: time.Now}
}

func validateRegistration(req models.UserCreate) (models.UserCreate, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return req, invalid("email", "not a valid email address")
	}
	req.Email = strings.ToLower(req.Email)
	if n := len(req.Username); n < 3 || n > 50 {
		return req, invalid("username", "must be between 3 and 50 characters")
	}
	if n := len(req.Password); n < 6 || n > 72 {
		return req, invalid("password", "must be between 6 and 72 bytes")
	}
	return req, nil
}

func (s *UserService) token(u models.User) (models.Token, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return models.Token{}, fmt.Errorf("issue token: %w", err)
	}
	return models.Token{AccessToken: tok, TokenType: tokenType}, nil
}

func (s *UserService) Register(ctx context.Context, req models.UserCreate) (models.Token, error) {
	req, err := validateRegistration(req)
	if err != nil {
		return models.Token{}, err
	}

	exists, err := s.users.UserExists(ctx, req.Email, req.Username)
	if err != nil {
		return models.Token{}, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return models.Token{}, fmt.Errorf("email or username already registered: %w", ErrConflict)
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return models.Token{}, err
	}
	u := models.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hash,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.users.InsertUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Token{}, fmt.Errorf("email or username already registered: %w", ErrConflict)
		}
		return models.Token{}, fmt.Errorf("save user: %w", err)
	}
	return s.token(u)
}

// Login answers unknown users and wrong passwords with the same error.
func (s *UserService) Login(ctx context.Context, req models.UserLogin) (models.Token, error) {
	u, err := s.users.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Token{}, fmt.Errorf("incorrect username or password: %w", ErrUnauthorized)
		}
		return models.Token{}, err
	}
	if !helpers.CheckPassword(u.HashedPassword, req.Password) {
		return models.Token{}, fmt.Errorf("incorrect username or password: %w", ErrUnauthorized)
	}
	return s.token(u)
}

// Authenticate resolves the user behind a bearer token.
func (s *UserService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, fmt.Errorf("missing token: %w", ErrUnauthorized)
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return models.User{}, fmt.Errorf("could not validate credentials: %w", ErrUnauthorized)
	}
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, fmt.Errorf("user not found: %w", ErrUnauthorized)
		}
		return models.User{}, err
	}
	return u, nil
}
