package api

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges email/password for a signed session token. The token is
// opaque to this package; storing and evaluating it is the session layer's
// job.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, "POST", "/api/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Signup registers a new account and returns its first session token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, "POST", "/api/auth/signup", "", signupRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
