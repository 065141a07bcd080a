package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/JMURv/auth-guard/internal/dto"
	md "github.com/JMURv/auth-guard/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

const minSecretBytes = 32

// NormalizeLogin case-folds and trims a login identifier.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// HashKey derives an opaque store key from its parts.
func HashKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// NewSecret returns a URL-safe random secret of at least 32 bytes of entropy.
func NewSecret(size int) (string, error) {
	if size < minSecretBytes {
		size = minSecretBytes
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateDevice fingerprints a client from its address, user agent and owner.
func GenerateDevice(uid uuid.UUID, d *dto.DeviceRequest) md.Device {
	return md.Device{
		ID:     HashKey(d.IP, d.UA, uid.String()),
		UserID: uid,
		UA:     d.UA,
		IP:     d.IP,
	}
}

func HashPassword(pswd string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pswd), bcryptCost)
	return string(bytes), err
}

func ComparePasswords(hashed, pswd []byte) error {
	if err := bcrypt.CompareHashAndPassword(hashed, pswd); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
