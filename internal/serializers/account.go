package serializers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crucial707/notes-api/internal/auth"
	"github.com/crucial707/notes-api/internal/models"
	"github.com/crucial707/notes-api/internal/repo"
)

const (
	maxUsernameLen = 150
	maxPasswordLen = 128
)

// AccountInput is the write side of an account. Password is never echoed back.
type AccountInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// AccountOutput is the read side of an account. It has no password field.
type AccountOutput struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func NewAccountOutput(u models.User) AccountOutput {
	return AccountOutput{ID: u.ID, Username: u.Username}
}

func DecodeAccountInput(r io.Reader) (AccountInput, error) {
	var in AccountInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return AccountInput{}, invalidJSON()
	}
	if in.Username != nil {
		u := strings.TrimSpace(*in.Username)
		in.Username = &u
	}
	return in, nil
}

func (in AccountInput) Validate() error {
	errs := fieldErrors{}

	switch {
	case in.Username == nil:
		errs.add("username", msgRequired)
	case *in.Username == "":
		errs.add("username", msgBlank)
	case utf8.RuneCountInString(*in.Username) > maxUsernameLen:
		errs.add("username", tooLong(maxUsernameLen))
	case hasNullChar(*in.Username):
		errs.add("username", msgNullChar)
	case !validUsername(*in.Username):
		errs.add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	switch {
	case in.Password == nil:
		errs.add("password", msgRequired)
	case *in.Password == "":
		errs.add("password", msgBlank)
	case utf8.RuneCountInString(*in.Password) > maxPasswordLen:
		errs.add("password", tooLong(maxPasswordLen))
	}

	return errs.err()
}

func validUsername(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		return false
	}
	return true
}

// UserStore persists accounts with an already hashed password.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
}

type AccountSerializer struct {
	Users      UserStore
	BcryptCost int
}

// Create validates in, hashes the password and stores the account.
// A taken username is reported as a ValidationError on "username".
func (s *AccountSerializer) Create(ctx context.Context, in AccountInput) (AccountOutput, error) {
	if err := in.Validate(); err != nil {
		return AccountOutput{}, err
	}

	hash, err := auth.HashPassword(*in.Password, s.BcryptCost)
	if err != nil {
		return AccountOutput{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Users.Create(ctx, *in.Username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			return AccountOutput{}, &ValidationError{Fields: map[string]string{
				"username": "A user with that username already exists.",
			}}
		}
		return AccountOutput{}, err
	}

	return NewAccountOutput(*user), nil
}
