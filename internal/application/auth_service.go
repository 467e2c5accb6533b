package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
	"github.com/oksasatya/planify/pkg/helpers"
)

// AuthService is the credential store and session issuer.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

// Session is an issued bearer token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	helpers.WarmDummyHash()
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

func sessionKey(sessionID string) string {
	return "user:session:" + sessionID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// NormalizeEmail trims and lowercases an address; all lookups go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user holding only a bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if email == "" {
		return nil, invalid("email", "is required")
	}
	if in.Password == "" {
		return nil, invalid("password", "is required")
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, invalid("password", "must be at most 72 bytes")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost a race against a concurrent signup; the unique index decides
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// Verify checks email/password. Unknown email and wrong password are indistinguishable:
// same error value and one bcrypt comparison either way.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if u == nil {
		helpers.CompareDummyPassword(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Issue signs a token for u and records the session in Redis when available.
func (s *AuthService) Issue(ctx context.Context, u *entity.User) (Session, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.Generate(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return Session{}, err
	}

	if s.Redis != nil {
		key := sessionKey(sid)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, time.Until(exp))
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			if s.Logger != nil {
				s.Logger.WithError(rErr).WithField("key", key).Error("redis session write failed")
			}
			return Session{}, rErr
		}
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Signup registers a user and issues its first session.
func (s *AuthService) Signup(ctx context.Context, in RegisterInput) (*entity.User, Session, error) {
	u, err := s.Register(ctx, in)
	if err != nil {
		return nil, Session{}, err
	}
	sess, err := s.Issue(ctx, u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, Session{}, err
	}
	sess, err := s.Issue(ctx, u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// Principal is the identity a valid token resolves to.
type Principal struct {
	UserID    string
	SessionID string
}

// Validate resolves a bearer token. Malformed, expired, tampered and revoked tokens all
// yield ErrInvalidToken.
func (s *AuthService) Validate(ctx context.Context, token string) (Principal, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	if s.Redis != nil {
		uid, rErr := s.Redis.HGet(ctx, sessionKey(claims.SessionID), "user_id").Result()
		if rErr != nil || uid != claims.UserID {
			return Principal{}, ErrInvalidToken
		}
	}
	return Principal{UserID: claims.UserID, SessionID: claims.SessionID}, nil
}

// Revoke ends a session. Without Redis tokens stay valid until they expire.
func (s *AuthService) Revoke(ctx context.Context, sessionID string) error {
	if s.Redis == nil || sessionID == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
