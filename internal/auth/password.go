package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword returns a salted bcrypt digest of plain.
// plain is reduced with SHA-256 first so inputs longer than bcrypt's
// 72-byte limit are neither rejected nor truncated.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword(prehash(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) error {
	if hash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// prehash yields 43 bytes of base64 with no NUL bytes.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}
