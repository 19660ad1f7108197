package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jwehrle/salescockpit/internal/auth"
	"github.com/jwehrle/salescockpit/internal/config"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	userinfoURL     = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type UserService interface {
	GoogleLogin(ctx context.Context, code string) (*LoginResponse, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Me(ctx context.Context) (*UserResponse, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

type googleUserinfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin exchanges the OAuth code, upserts the user by email and issues
// the access JWT plus a refresh token.
func (s *userService) GoogleLogin(ctx context.Context, code string) (*LoginResponse, string, error) {
	log := config.WithContext(ctx)

	cfg := oauthConfig()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, "", ErrUnauthorized
	}

	resp, err := cfg.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google userinfo")
		return nil, "", fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, "", fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, "", ErrUnauthorized
	}

	u, err := s.repo.FindByEmail(info.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, "", err
	}
	if u == nil {
		u = &User{
			ID:    uuid.New(),
			Name:  info.Name,
			Email: info.Email,
			Role:  RoleAdvisor,
		}
		if err := s.repo.Upsert(u); err != nil {
			log.WithError(err).Error("Failed to create user on first login")
			return nil, "", err
		}
		log.WithField("user_id", u.ID).Info("Created user on first login")
	}

	accessToken, err := auth.GenerateJWT(u.ID.String(), string(u.Role), accessTokenTTL)
	if err != nil {
		return nil, "", err
	}
	refreshToken, err := auth.GenerateJWT(u.ID.String(), string(u.Role), refreshTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return &LoginResponse{User: ToResponse(u), Token: accessToken}, refreshToken, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return "", ErrUnauthorized
	}
	return auth.GenerateJWT(claims.UserID, claims.Role, accessTokenTTL)
}

func (s *userService) Me(ctx context.Context) (*UserResponse, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return ToResponse(u), nil
}
