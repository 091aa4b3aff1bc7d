package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hashes use werkzeug's format, pbkdf2:sha256:<iterations>$<salt>$<hex>,
// so rows written by the previous deployment keep verifying.
const (
	pbkdf2Iterations = 600000
	saltLength       = 8
)

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// HashPassword derives a salted one-way hash of the password.
func HashPassword(password string) (string, error) {
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", pbkdf2Iterations, salt, hex.EncodeToString(key)), nil
}

// VerifyPassword checks a password against a stored hash. The iteration
// count is read from the hash itself, so hashes generated under older
// defaults still verify.
func VerifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	iterations, ok := parseMethod(parts[0])
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), []byte(parts[1]), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}

// parseMethod accepts "pbkdf2:sha256" or "pbkdf2:sha256:<iterations>".
func parseMethod(method string) (int, bool) {
	fields := strings.Split(method, ":")
	if len(fields) < 2 || fields[0] != "pbkdf2" || fields[1] != "sha256" {
		return 0, false
	}
	if len(fields) == 2 {
		return pbkdf2Iterations, true
	}
	iterations, err := strconv.Atoi(fields[2])
	if err != nil || iterations <= 0 {
		return 0, false
	}
	return iterations, true
}

func randomSalt(length int) (string, error) {
	salt := make([]byte, length)
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := range salt {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		salt[i] = saltAlphabet[n.Int64()]
	}
	return string(salt), nil
}
