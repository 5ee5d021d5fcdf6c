package models

// Tokens is the access/refresh pair issued by the backend.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IsZero reports whether no access token is held.
func (t Tokens) IsZero() bool {
	return t.AccessToken == ""
}

// User is the admin profile returned by the profile endpoint.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Avatar    *Media `json:"avatar,omitempty"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SessionSnapshot is the persisted form of a console session.
type SessionSnapshot struct {
	Auth Tokens `json:"auth"`
	User *User  `json:"user,omitempty"`
}
