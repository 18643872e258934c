package entities

import "strings"

// AdminRole is the role name that unlocks the admin dashboard.
const AdminRole = "Admin"

type User struct {
	ID        string   `json:"id,omitempty"`
	Email     string   `json:"email"`
	UserName  string   `json:"userName,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	FullName  string   `json:"fullName,omitempty"`
	Name      string   `json:"name,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// DisplayName picks the first populated name field.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.FullName != "":
		return u.FullName
	case u.FirstName != "" || u.LastName != "":
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return u.UserName
}

func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	UserName  string `json:"userName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role"`
}

// AuthResponse covers the shapes the auth endpoints have been seen to return.
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	JWT         string `json:"jwt,omitempty"`
	User        *User  `json:"user,omitempty"`
	Message     string `json:"message,omitempty"`
	Data        *struct {
		Token string `json:"token,omitempty"`
		User  *User  `json:"user,omitempty"`
	} `json:"data,omitempty"`
}

// BearerToken returns the first token found in the response.
func (r AuthResponse) BearerToken() string {
	switch {
	case r.Token != "":
		return r.Token
	case r.AccessToken != "":
		return r.AccessToken
	case r.JWT != "":
		return r.JWT
	case r.Data != nil && r.Data.Token != "":
		return r.Data.Token
	}
	return ""
}

// Profile returns the user object from the response, if any.
func (r AuthResponse) Profile() *User {
	if r.User != nil {
		return r.User
	}
	if r.Data != nil {
		return r.Data.User
	}
	return nil
}
