package apiclient

import (
	"context"
	"net/http"

	"medtrack/web/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResult is the body of a successful patient login or signup.
type AuthResult struct {
	Token string         `json:"token"`
	User  domain.Patient `json:"user"`
}

type PharmacySignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PharmacyName    string `json:"pharmacyName"`
	PharmacyAddress string `json:"pharmacyAddress"`
	LicenseNumber   string `json:"licenseNumber,omitempty"`
}

// PharmacyAuthResult is the body of a successful pharmacy login or signup.
type PharmacyAuthResult struct {
	Token string                     `json:"token"`
	Staff domain.PharmacyStaffMember `json:"staff"`
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, "", http.MethodPost, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &res)
	return res, err
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, "", http.MethodPost, "/auth/signup", nil, req, &res)
	return res, err
}

// Validate resolves the account behind a bearer token. The endpoint only
// returns the patient shape; staff sessions are disambiguated by a
// follow-up MyPharmacy call (see internal/session).
func (c *Client) Validate(ctx context.Context, token string) (domain.Patient, error) {
	var res domain.Patient
	err := c.do(ctx, token, http.MethodGet, "/auth/validate", nil, nil, &res)
	return res, err
}

func (c *Client) PharmacyLogin(ctx context.Context, email, password string) (PharmacyAuthResult, error) {
	var res PharmacyAuthResult
	err := c.do(ctx, "", http.MethodPost, "/auth/pharmacy/login", nil, LoginRequest{Email: email, Password: password}, &res)
	return res, err
}

func (c *Client) PharmacySignup(ctx context.Context, req PharmacySignupRequest) (PharmacyAuthResult, error) {
	var res PharmacyAuthResult
	err := c.do(ctx, "", http.MethodPost, "/auth/pharmacy/signup", nil, req, &res)
	return res, err
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := struct {
		NewPassword string `json:"newPassword"`
	}{NewPassword: newPassword}
	return c.do(ctx, token, http.MethodPost, "/auth/reset-password", nil, body, nil)
}

// GoogleAuthURL fetches the OAuth2 provider redirect URL.
func (c *Client) GoogleAuthURL(ctx context.Context) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	err := c.do(ctx, "", http.MethodGet, "/oauth2/google/url", nil, nil, &res)
	return res.URL, err
}
