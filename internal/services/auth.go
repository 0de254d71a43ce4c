package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/repos"
	"github.com/sageleaf/curricula-backend/internal/requestdata"
	"github.com/sageleaf/curricula-backend/internal/types"
)

// AuthService validates bearer tokens minted by the external identity
// provider and resolves them to a local user profile. Sign-up, sign-in and
// password flows live entirely with the provider; this service only consumes
// its tokens.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	profileRepo  repos.UserProfileRepo
	jwtSecretKey string
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.UserProfileRepo, jwtSecretKey string) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		profileRepo:  profileRepo,
		jwtSecretKey: jwtSecretKey,
	}
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !token.Valid {
		return ctx, fmt.Errorf("%w: token invalid", ErrUnauthenticated)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		return ctx, fmt.Errorf("%w: token expired", ErrUnauthenticated)
	}

	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return ctx, fmt.Errorf("%w: token missing subject", ErrUnauthenticated)
	}
	email := ""
	if v, ok := claims["email"].(string); ok {
		email = strings.ToLower(strings.TrimSpace(v))
	}

	profile, err := as.ensureProfile(ctx, subject, email, claims)
	if err != nil {
		return ctx, err
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		Subject:     subject,
		UserID:      profile.ID,
		Email:       profile.Email,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

// ensureProfile lazily creates the local profile row the first time a token
// subject is seen.
func (as *authService) ensureProfile(ctx context.Context, subject, email string, claims jwt.MapClaims) (*types.UserProfile, error) {
	existing, err := as.profileRepo.GetBySubject(ctx, nil, subject)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	firstName := ""
	if v, ok := claims["given_name"].(string); ok {
		firstName = strings.TrimSpace(v)
	} else if v, ok := claims["name"].(string); ok {
		firstName = strings.TrimSpace(v)
	}

	profile := &types.UserProfile{
		ID:        uuid.New(),
		Subject:   subject,
		Email:     email,
		FirstName: firstName,
	}
	created, err := as.profileRepo.Create(ctx, nil, []*types.UserProfile{profile})
	if err != nil {
		// A concurrent first request may have created it already.
		if again, lookupErr := as.profileRepo.GetBySubject(ctx, nil, subject); lookupErr == nil && again != nil {
			return again, nil
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	as.log.Info("Created user profile on first authenticated request", "user_id", created[0].ID)
	return created[0], nil
}
