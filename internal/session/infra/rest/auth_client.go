package rest

import (
	"context"
	"errors"
	"fmt"

	"github.com/nvaldebenito/storefront/internal/session/domain"
	"github.com/nvaldebenito/storefront/pkg/restclient"
)

// AuthClient talks to the auth and user-profile endpoints.
type AuthClient struct {
	rc *restclient.Client
}

func NewAuthClient(rc *restclient.Client) *AuthClient {
	return &AuthClient{rc: rc}
}

type userDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (d userDTO) toDomain() domain.User {
	role := d.Role
	if role == "" {
		role = "client"
	}
	return domain.User{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Role:      role,
	}
}

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Telephone       string `json:"telephone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	BirthDate       string `json:"birthDate,omitempty"`
	Street          string `json:"street,omitempty"`
	Number          string `json:"number,omitempty"`
	Commune         string `json:"commune,omitempty"`
	Region          string `json:"region,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	body := map[string]string{"email": email, "password": password}

	var out struct {
		Token string  `json:"token"`
		User  userDTO `json:"user"`
	}
	if err := c.rc.Post(ctx, "/auth/login", body, &out); err != nil {
		return domain.User{}, "", fmt.Errorf("login: %w", err)
	}
	if out.Token == "" {
		return domain.User{}, "", errors.New("login: server returned no token")
	}

	return out.User.toDomain(), out.Token, nil
}

func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	var out struct {
		User userDTO `json:"user"`
	}
	if err := c.rc.Post(ctx, "/auth/register", req, &out); err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}
	return out.User.toDomain(), nil
}

// Logout is best effort: the caller drops the local session regardless of
// what the server says.
func (c *AuthClient) Logout(ctx context.Context) error {
	if err := c.rc.Post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Verify asks the server whether the current token still holds. A rejection
// is a clean false; only transport failures surface as errors.
func (c *AuthClient) Verify(ctx context.Context) (bool, error) {
	err := c.rc.Get(ctx, "/auth/verify", nil)
	if err == nil {
		return true, nil
	}

	var apiErr *restclient.APIError
	if errors.Is(err, restclient.ErrUnauthorized) || errors.As(err, &apiErr) {
		return false, nil
	}
	return false, fmt.Errorf("verify: %w", err)
}

func (c *AuthClient) Profile(ctx context.Context) (domain.User, error) {
	var dto userDTO
	if err := c.rc.Get(ctx, "/user/profile", &dto); err != nil {
		return domain.User{}, fmt.Errorf("get profile: %w", err)
	}
	return dto.toDomain(), nil
}

func (c *AuthClient) UpdateProfile(ctx context.Context, patch domain.UserPatch) (domain.User, error) {
	body := map[string]any{}
	if patch.FirstName != nil {
		body["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		body["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		body["email"] = *patch.Email
	}

	var dto userDTO
	if err := c.rc.Patch(ctx, "/user/profile", body, &dto); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return dto.toDomain(), nil
}
