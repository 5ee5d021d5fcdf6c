package models

// LoginRequest is posted to the admin login endpoint.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse uses the snake_case names of the login endpoint.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest is posted to the refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse accepts both camelCase and snake_case token names.
type RefreshResponse struct {
	AccessToken       string `json:"accessToken"`
	RefreshToken      string `json:"refreshToken"`
	AccessTokenSnake  string `json:"access_token"`
	RefreshTokenSnake string `json:"refresh_token"`
}

// Pair resolves the token names, keeping previous when no refresh token came back.
func (r RefreshResponse) Pair(previous string) Tokens {
	t := Tokens{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
	if t.AccessToken == "" {
		t.AccessToken = r.AccessTokenSnake
	}
	if t.RefreshToken == "" {
		t.RefreshToken = r.RefreshTokenSnake
	}
	if t.RefreshToken == "" {
		t.RefreshToken = previous
	}
	return t
}
