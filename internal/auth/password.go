// Package auth provides password hashing, bearer tokens and the
// authenticated request context.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default Argon2id parameters (OWASP 2024 recommended minimum).
const (
	DefaultHashTime     = 3
	DefaultHashMemoryKB = 64 * 1024 // 64 MB
	DefaultHashThreads  = 4

	argon2KeyLen  = 32
	argon2SaltLen = 16
)

var (
	// ErrInvalidHash indicates the hash format is invalid.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash version is not supported.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// PasswordHasher hashes passwords with Argon2id. The cost parameters are
// written into every hash, so changing them never invalidates old hashes.
type PasswordHasher struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
}

// NewPasswordHasher returns a hasher, falling back to defaults for zero values.
func NewPasswordHasher(time, memoryKB uint32, threads uint8) *PasswordHasher {
	h := &PasswordHasher{Time: time, MemoryKB: memoryKB, Threads: threads}
	if h.Time == 0 {
		h.Time = DefaultHashTime
	}
	if h.MemoryKB == 0 {
		h.MemoryKB = DefaultHashMemoryKB
	}
	if h.Threads == 0 {
		h.Threads = DefaultHashThreads
	}
	return h
}

// Hash creates an Argon2id hash of the password in PHC string format.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.Time, h.MemoryKB, h.Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.MemoryKB,
		h.Time,
		h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify checks the password against a PHC encoded hash.
// Uses constant-time comparison to prevent timing attacks.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	computedHash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expectedHash)))

	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}
