package util

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"runtime"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32

	// upper bound accepted from a stored hash, 1 GiB
	argon2MaxMemory = 1024 * 1024
)

// Argon2idHasher hashes passwords with argon2id and encodes them in PHC format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// At most a fixed number of derivations run at once; callers beyond that wait
// for a slot or for their context to end.
type Argon2idHasher struct {
	sem *semaphore.Weighted
}

// NewArgon2idHasher returns a hasher allowing limit concurrent derivations.
// A limit <= 0 uses GOMAXPROCS.
func NewArgon2idHasher(limit int) *Argon2idHasher {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	return &Argon2idHasher{sem: semaphore.NewWeighted(int64(limit))}
}

func (h *Argon2idHasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("PASSWORD_SALT_FAILED").Wrap(err)
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", oops.Code("PASSWORD_HASH_CANCELLED").Wrap(err)
	}
	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	h.sem.Release(1)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. Malformed hashes never match.
func (h *Argon2idHasher) Verify(ctx context.Context, password, encoded string) bool {
	if isBcrypt(encoded) {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	}

	params, salt, expected, ok := parseArgon2id(encoded)
	if !ok {
		return false
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))
	h.sem.Release(1)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func isBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func parseArgon2id(encoded string) (argon2Params, []byte, []byte, bool) {
	var params argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, false
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return params, nil, nil, false
	}
	if memory == 0 || memory > argon2MaxMemory || time == 0 || time > 16 || threads == 0 || threads > 255 {
		return params, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return params, nil, nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > 1024 {
		return params, nil, nil, false
	}

	params = argon2Params{memory: memory, time: time, threads: uint8(threads)}

	return params, salt, key, true
}
