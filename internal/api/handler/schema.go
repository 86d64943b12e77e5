package handler

import "time"

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Auth ---

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type sessionResponse struct {
	Message   string       `json:"message,omitempty"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// --- Articles ---

// articleRequest has no author or publication fields; any such keys in the
// payload are dropped on bind.
type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type articleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type articleEnvelope struct {
	Message string          `json:"message,omitempty"`
	Article articleResponse `json:"article"`
}

type articleListResponse struct {
	Articles []articleResponse `json:"articles"`
	Count    int               `json:"count"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"      validate:"required,oneof=admin moderator writer viewer"`
	IsActive *bool  `json:"is_active"`
}

type editUserRequest struct {
	Username string `json:"username"  validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Role     string `json:"role"      validate:"required,oneof=admin moderator writer viewer"`
	IsActive *bool  `json:"is_active" validate:"required"`
}

type userResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

type userEnvelope struct {
	Message string       `json:"message,omitempty"`
	User    userResponse `json:"user"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
	Count int            `json:"count"`
}

type messageResponse struct {
	Message string `json:"message"`
}
