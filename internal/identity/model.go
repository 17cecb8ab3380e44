package identity

import "time"

// User is a registered account. HashedPassword never leaves this package's
// service layer; responses use PublicUser.
type User struct {
	ID             int64   `gorm:"primaryKey"`
	Username       string  `gorm:"uniqueIndex:idx_users_username;not null"`
	Email          *string `gorm:"size:255"`
	FirstName      string  `gorm:"not null"`
	LastName       string  `gorm:"not null"`
	HashedPassword string  `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName pins the table created by the schema migrations.
func (User) TableName() string { return "users" }

// PublicUser is the only user shape serialized in responses.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the user's public view.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	Username  string  `json:"username" validate:"required,max=100"`
	Password  string  `json:"password" validate:"required"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
