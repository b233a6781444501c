package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/internal/domain/entity"
	"github.com/bakemart/backend/internal/domain/repository"
	"github.com/bakemart/backend/pkg/helpers"
)

const sessionTTL = 24 * time.Hour

func sessionKey(subjectID string) string {
	return "user:session:" + subjectID
}

// RedisStore keeps one session hash per subject in Redis, issues JWT pairs
// bound to the session id, and publishes auth state changes on the in-process
// event stream.
type RedisStore struct {
	Profiles repository.ProfileRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Logger   *logrus.Logger

	events *bus
}

func NewRedisStore(profiles repository.ProfileRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *RedisStore {
	return &RedisStore{
		Profiles: profiles,
		JWT:      jwt,
		Redis:    rdb,
		Logger:   logger,
		events:   newBus(),
	}
}

func (s *RedisStore) Subscribe(handler func(Event)) *Subscription {
	return s.events.subscribe(handler)
}

func (s *RedisStore) EmitUserUpdated(sess *Session) {
	s.events.publish(Event{Type: UserUpdated, Session: sess})
}

// Current resolves the live session for an access token. A parse failure, a
// missing session hash, or a session-id mismatch after rotation all mean the
// same thing: there is no session.
func (s *RedisStore) Current(ctx context.Context, accessToken string) (*Session, error) {
	if accessToken == "" {
		return nil, nil
	}
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, nil
	}
	data, err := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data["sid"] != claims.SessionID {
		return nil, nil
	}
	return &Session{SubjectID: claims.UserID, Email: data["email"], SID: claims.SessionID}, nil
}

func (s *RedisStore) SignIn(ctx context.Context, email, password string) (*Session, TokenPair, error) {
	p, err := s.Profiles.GetByEmail(ctx, email)
	if err != nil || p == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(p.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !p.IsVerified {
		return nil, TokenPair{}, ErrEmailNotVerified
	}

	sid := uuid.NewString()
	pair, err := s.issueTokens(p.ID, sid)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if err := s.writeSession(ctx, p, sid); err != nil {
		return nil, TokenPair{}, err
	}

	sess := &Session{SubjectID: p.ID, Email: p.Email, SID: sid}
	s.events.publish(Event{Type: SignedIn, Session: sess})
	return sess, pair, nil
}

func (s *RedisStore) SignOut(ctx context.Context, subjectID string) error {
	if subjectID != "" {
		if err := s.Redis.Del(ctx, sessionKey(subjectID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("subject_id", subjectID).Warn("session delete failed")
		}
	}
	s.events.publish(Event{Type: SignedOut})
	return nil
}

// Refresh rotates the session id and both tokens. A token whose session no
// longer matches (expired, revoked, already rotated) yields ErrSessionExpired.
func (s *RedisStore) Refresh(ctx context.Context, refreshToken string) (*Session, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrSessionExpired
	}
	p, err := s.Profiles.GetByID(ctx, claims.UserID)
	if err != nil || p == nil {
		return nil, TokenPair{}, ErrSessionExpired
	}
	key := sessionKey(p.ID)
	data, err := s.Redis.HGetAll(ctx, key).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return nil, TokenPair{}, ErrSessionExpired
	}

	sid := uuid.NewString()
	pair, err := s.issueTokens(p.ID, sid)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{"sid": sid, "updated_at": nowRFC3339()})
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}

	sess := &Session{SubjectID: p.ID, Email: p.Email, SID: sid}
	s.events.publish(Event{Type: TokenRefreshed, Session: sess})
	return sess, pair, nil
}

func (s *RedisStore) issueTokens(subjectID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(subjectID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("subject_id", subjectID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(subjectID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("subject_id", subjectID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *RedisStore) writeSession(ctx context.Context, p *entity.Profile, sid string) error {
	key := sessionKey(p.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    p.ID,
		"email":      p.Email,
		"name":       p.FullName,
		"role":       string(p.Role),
		"sid":        sid,
		"logged_in":  true,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, sessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

var _ Store = (*RedisStore)(nil)
