package service

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/geocoder89/fittrack/internal/auth"
	"github.com/geocoder89/fittrack/internal/domain"
	"github.com/geocoder89/fittrack/internal/domain/user"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/geocoder89/fittrack/internal/security"
)

const (
	CodeEmailTaken         = "email_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"

	MinPasswordLength = 6
)

type TokenIssuer interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	VerifyRefreshToken(token string) (*auth.Claims, error)
}

// Session is what a successful register or login hands back.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         user.User
}

type AuthService struct {
	users  UserRepo
	tokens TokenIssuer
	prom   *observability.Prom
	now    Clock
	log    *slog.Logger
}

func NewAuthService(users UserRepo, tokens TokenIssuer, prom *observability.Prom, now Clock, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, prom: prom, now: now, log: log}
}

func (s *AuthService) Register(ctx context.Context, req user.RegisterRequest) (Session, error) {
	sess, err := s.register(ctx, req)
	s.prom.ObserveAuth("register", outcome(err))
	return sess, err
}

func (s *AuthService) Login(ctx context.Context, req user.LoginRequest) (Session, error) {
	sess, err := s.login(ctx, req)
	s.prom.ObserveAuth("login", outcome(err))
	return sess, err
}

// Refresh exchanges a refresh credential for a new access credential.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.refresh(refreshToken)
	s.prom.ObserveAuth("refresh", outcome(err))
	return access, err
}

func (s *AuthService) register(ctx context.Context, req user.RegisterRequest) (Session, error) {
	req.Email = user.NormalizeEmail(req.Email)

	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return Session{}, validation(domain.Invalid("password", "must be at least 6 characters"))
	}
	if len(req.Password) > security.MaxPasswordBytes {
		return Session{}, validation(domain.Invalid("password", "must be at most 72 bytes"))
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return Session{}, emailTaken(nil)
	case !errors.Is(err, user.ErrNotFound):
		return Session{}, internal("look up user", err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return Session{}, internal("hash password", err)
	}

	u, err := user.New(req, hash, s.now())
	if err != nil {
		return Session{}, fromDomain("register user", err)
	}

	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, user.ErrEmailTaken) {
			return Session{}, emailTaken(err)
		}
		return Session{}, internal("create user", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)

	return s.session(u)
}

func (s *AuthService) login(ctx context.Context, req user.LoginRequest) (Session, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, invalidCredentials(nil)
		}
		return Session{}, internal("look up user", err)
	}

	if err := security.CheckPassword(u.PasswordHash, req.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return Session{}, invalidCredentials(nil)
		}
		return Session{}, internal("verify password", err)
	}

	return s.session(u)
}

func (s *AuthService) refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", &Error{Kind: KindAuthentication, Code: CodeInvalidToken, Message: "missing refresh token"}
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", &Error{Kind: KindAuthentication, Code: CodeInvalidToken, Message: "invalid or expired refresh token", Err: err}
	}

	access, err := s.tokens.GenerateAccessToken(claims.UserID())
	if err != nil {
		return "", internal("issue access token", err)
	}
	return access, nil
}

func (s *AuthService) session(u user.User) (Session, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return Session{}, internal("issue access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return Session{}, internal("issue refresh token", err)
	}
	return Session{AccessToken: access, RefreshToken: refresh, User: u}, nil
}

func emailTaken(err error) error {
	return &Error{Kind: KindConflict, Code: CodeEmailTaken, Message: "email already registered", Err: err}
}

func invalidCredentials(err error) error {
	return &Error{Kind: KindAuthentication, Code: CodeInvalidCredentials, Message: "invalid email or password", Err: err}
}

// outcome labels an auth attempt for metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *Error
	if errors.As(err, &se) {
		if se.Code != "" {
			return se.Code
		}
		return string(se.Kind)
	}
	return "error"
}
