package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/billfold/billfold/internal/auth/domain"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/pkg/db"
	"github.com/billfold/billfold/pkg/repository"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	GenID    *snowflake.Node
	Users    repository.Repository[domain.User]
	Sessions repository.Repository[domain.Session]
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	users    repository.Repository[domain.User]
	sessions repository.Repository[domain.Session]
	tokenTTL time.Duration
}

func New(p Params) domain.Service {
	ttl := time.Duration(p.Config.AuthTokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		users:    p.Users,
		sessions: p.Sessions,
		tokenTTL: ttl,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.AuthResponse{}, domain.ErrInvalidEmail
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.AuthResponse{}, domain.ErrInvalidName
	}
	if len(req.Password) < minPasswordLength {
		return domain.AuthResponse{}, domain.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.AuthResponse{}, domain.ErrEmailTaken
		}
		return domain.AuthResponse{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.openSession(ctx, user)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindOne(ctx, &domain.User{Email: email})
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if user == nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, *user)
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, domain.ErrInvalidToken
	}

	session, err := s.sessions.FindOne(ctx, &domain.Session{ID: token})
	if err != nil {
		return domain.User{}, err
	}
	if session == nil {
		return domain.User{}, domain.ErrInvalidToken
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.log.Warn("expired session cleanup failed", zap.Error(err))
		}
		return domain.User{}, domain.ErrInvalidToken
	}

	user, err := s.users.FindOne(ctx, &domain.User{ID: session.UserID})
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrInvalidToken
	}

	return *user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrInvalidToken
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) openSession(ctx context.Context, user domain.User) (domain.AuthResponse, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}

	if err := s.sessions.Create(ctx, &session); err != nil {
		return domain.AuthResponse{}, err
	}

	return domain.AuthResponse{
		Token:     session.ID,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}
