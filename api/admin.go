package api

import (
	"context"
	"net/http"

	"github.com/askdesk/askdesk-go/consts"
	"github.com/askdesk/askdesk-go/ecode"
	"github.com/askdesk/askdesk-go/session"

	"github.com/google/go-querystring/query"
)

// AdminService covers the /admin endpoints. Its Login, Logout and
// Refresh methods satisfy session.AuthBackend; they carry the
// credential explicitly instead of pulling it from the session so the
// manager stays in control of which token is exchanged.
type AdminService struct {
	client *Client
}

// Admin returns the admin endpoint service
func (c *Client) Admin() *AdminService {
	return &AdminService{client: c}
}

var _ session.AuthBackend = (*AdminService)(nil)

// Login exchanges credentials for a token and profile
func (s *AdminService) Login(ctx context.Context, username, password string) (*session.AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out loginResponse
	err := s.client.do(ctx, &request{method: http.MethodPost, path: "/admin/login", body: body}, &out)
	if err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	if out.Token == "" || out.principal() == nil {
		return nil, ecode.New(ecode.Validation, "login response missing token or user")
	}
	return &session.AuthResult{Token: out.Token, User: out.principal()}, nil
}

// Logout notifies the backend that the credential is retired
func (s *AdminService) Logout(ctx context.Context, credential string) error {
	var out envelope
	req := &request{method: http.MethodPost, path: "/admin/logout"}
	if err := s.client.doWithBearer(ctx, req, credential, &out); err != nil {
		return err
	}
	return out.check()
}

// Refresh exchanges the given credential for a fresh one; the profile
// is included only when the backend returns one
func (s *AdminService) Refresh(ctx context.Context, credential string) (*session.AuthResult, error) {
	var out loginResponse
	req := &request{method: http.MethodPost, path: "/admin/refresh"}
	if err := s.client.doWithBearer(ctx, req, credential, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ecode.New(ecode.Validation, "refresh response missing token")
	}
	return &session.AuthResult{Token: out.Token, User: out.principal()}, nil
}

// Profile fetches the authenticated principal
func (s *AdminService) Profile(ctx context.Context) (*session.Profile, error) {
	var out loginResponse
	err := s.client.do(ctx, &request{method: http.MethodGet, path: "/admin/me", authed: true}, &out)
	if err != nil {
		return nil, err
	}
	if p := out.principal(); p != nil {
		return p, nil
	}
	return nil, ecode.New(ecode.Validation, "profile response missing user")
}

// ProfileUpdate carries the mutable profile fields
type ProfileUpdate struct {
	Email string `json:"email,omitempty"`
}

// UpdateProfile updates the authenticated principal's profile
func (s *AdminService) UpdateProfile(ctx context.Context, update *ProfileUpdate) error {
	var out envelope
	req := &request{method: http.MethodPut, path: "/admin/profile", body: update, authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return err
	}
	return out.check()
}

// PasswordChange carries a password rotation request
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword rotates the authenticated principal's password
func (s *AdminService) ChangePassword(ctx context.Context, change *PasswordChange) error {
	var out envelope
	req := &request{method: http.MethodPut, path: "/admin/change-password", body: change, authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return err
	}
	return out.check()
}

// AdminAccount is a managed admin account entry
type AdminAccount struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"isActive"`
}

// AccountFilter narrows the admin account listing
type AccountFilter struct {
	Page     int    `url:"page,omitempty"`
	Limit    int    `url:"limit,omitempty"`
	Role     string `url:"role,omitempty"`
	IsActive *bool  `url:"isActive,omitempty"`
}

// Register creates a new admin account (super_admin only)
func (s *AdminService) Register(ctx context.Context, account *AdminAccount, password string) error {
	body := map[string]any{
		"username": account.Username,
		"password": password,
		"role":     account.Role,
		"email":    account.Email,
	}
	var out envelope
	req := &request{method: http.MethodPost, path: "/admin/register", body: body, authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return err
	}
	return out.check()
}

// List fetches admin accounts (super_admin only)
func (s *AdminService) List(ctx context.Context, filter *AccountFilter) ([]AdminAccount, *Pagination, error) {
	req := &request{method: http.MethodGet, path: "/admin/list", authed: true}
	if filter != nil {
		values, err := query.Values(filter)
		if err != nil {
			return nil, nil, ecode.Wrap(ecode.Validation, "invalid account filter", err)
		}
		req.query = values
	}

	var out listResponse
	if err := s.client.do(ctx, req, &out); err != nil {
		return nil, nil, err
	}
	if err := out.check(); err != nil {
		return nil, nil, err
	}

	var accounts []AdminAccount
	if err := decodeData(out.Data, &accounts); err != nil {
		return nil, nil, err
	}
	return accounts, out.Pagination, nil
}

// ToggleStatus flips an admin account's active flag (super_admin only)
func (s *AdminService) ToggleStatus(ctx context.Context, id string) error {
	var out envelope
	req := &request{method: http.MethodPut, path: "/admin/" + id + "/toggle-status", authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return err
	}
	return out.check()
}

// Stats fetches admin account statistics
func (s *AdminService) Stats(ctx context.Context) (map[string]int, error) {
	var out dataResponse
	req := &request{method: http.MethodGet, path: "/admin/stats", authed: true}
	if err := s.client.do(ctx, req, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	var stats map[string]int
	if err := decodeData(out.Data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// doWithBearer sends an explicitly-credentialed request, bypassing the
// bound session source. Used for the credential-exchanging endpoints.
func (c *Client) doWithBearer(ctx context.Context, req *request, credential string, out any) error {
	req.header = consts.BearerKey + credential
	return c.do(ctx, req, out)
}
