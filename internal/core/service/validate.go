package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkroom/cms/internal/core/domain"
)

const (
	maxUsernameLength = 150
	maxEmailLength    = 254
	// DefaultPasswordMinLength applies when PasswordPolicy.MinLength is unset.
	DefaultPasswordMinLength = 6
)

var (
	validate        = validator.New()
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

// checkUsername records a field error for an empty, oversized or malformed username.
func checkUsername(ve *domain.ValidationError, username string) {
	switch {
	case username == "":
		ve.Add("username", "this field is required")
	case len([]rune(username)) > maxUsernameLength:
		ve.Add("username", "ensure this value has at most 150 characters")
	case !usernamePattern.MatchString(username):
		ve.Add("username", "enter a valid username: letters, digits and @/./+/-/_ only")
	}
}

func checkEmail(ve *domain.ValidationError, email string) {
	switch {
	case email == "":
		ve.Add("email", "this field is required")
	case len(email) > maxEmailLength:
		ve.Add("email", "ensure this value has at most 254 characters")
	case validate.Var(email, "email") != nil:
		ve.Add("email", "enter a valid email address")
	}
}

// PasswordPolicy rejects weak passwords.
type PasswordPolicy struct {
	MinLength int
}

func (p PasswordPolicy) minLength() int {
	if p.MinLength <= 0 {
		return DefaultPasswordMinLength
	}
	return p.MinLength
}

// Check records at most one message under "password".
func (p PasswordPolicy) Check(ve *domain.ValidationError, username, password string) {
	minLen := p.minLength()
	switch {
	case password == "":
		ve.Add("password", "this field is required")
	case len([]rune(password)) < minLen:
		ve.Add("password", fmt.Sprintf("this password is too short, it must contain at least %d characters", minLen))
	case isNumeric(password):
		ve.Add("password", "this password is entirely numeric")
	case username != "" && strings.EqualFold(password, username):
		ve.Add("password", "the password is too similar to the username")
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func hashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ensureUsernameFree flags a username already held by a different account.
func ensureUsernameFree(ve *domain.ValidationError, existing *domain.User, selfID string) {
	if existing != nil && existing.ID != selfID {
		ve.Add("username", "a user with that username already exists").Wrap(domain.ErrUserExists)
	}
}
