package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHashers() map[string]Hasher {
	return map[string]Hasher{
		"bcrypt":   NewBcryptHasher(WithCost(bcrypt.MinCost)),
		"argon2id": NewArgon2Hasher(WithArgon2Memory(1024), WithArgon2Threads(1)),
	}
}

func TestHasherRoundTrip(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			digest, err := h.Hash("correct horse")
			require.NoError(t, err)
			assert.NotEqual(t, "correct horse", digest)

			assert.True(t, h.Verify("correct horse", digest))
			assert.False(t, h.Verify("correct horsE", digest))
			assert.False(t, h.Verify("", digest))
		})
	}
}

func TestHasherSaltsEachDigest(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			a, err := h.Hash("same")
			require.NoError(t, err)
			b, err := h.Hash("same")
			require.NoError(t, err)

			assert.NotEqual(t, a, b)
			assert.True(t, h.Verify("same", a))
			assert.True(t, h.Verify("same", b))
		})
	}
}

func TestHasherRejectsOtherPasswordsDigest(t *testing.T) {
	for name, h := range testHashers() {
		t.Run(name, func(t *testing.T) {
			other, err := h.Hash("p2-password")
			require.NoError(t, err)
			assert.False(t, h.Verify("p1-password", other))
		})
	}
}

func TestHasherMalformedDigestVerifiesFalse(t *testing.T) {
	malformed := []string{
		"",
		"not-a-digest",
		"$2a$04$short",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$!!!",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
	}
	for name, h := range testHashers() {
		for _, digest := range malformed {
			assert.False(t, h.Verify("anything", digest), "%s: %q", name, digest)
		}
	}
}

func TestBcryptRejectsOverlongPassword(t *testing.T) {
	_, err := NewBcryptHasher(WithCost(bcrypt.MinCost)).Hash(strings.Repeat("a", MaxBcryptLength+1))
	assert.Error(t, err)
}

func TestBcryptIgnoresOutOfRangeCost(t *testing.T) {
	assert.Equal(t, 12, NewBcryptHasher(WithCost(99)).cost)
}

func TestArgon2DigestFormat(t *testing.T) {
	digest, err := NewArgon2Hasher(WithArgon2Memory(1024), WithArgon2Threads(1)).Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=1024,t=1,p=1$"), digest)
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, AlgorithmBcrypt, cfg.Algorithm)
	assert.Equal(t, 12, cfg.BcryptCost)
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Algorithm = "md5"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.BcryptCost = 2
	assert.Error(t, bad.Validate())
}

func TestNewHasherSelectsAlgorithm(t *testing.T) {
	_, ok := NewHasher(Config{}).(*BcryptHasher)
	assert.True(t, ok)

	h, ok := NewHasher(Config{Algorithm: AlgorithmArgon2id, Argon2Memory: 1024, Argon2Threads: 1}).(*Argon2Hasher)
	require.True(t, ok)
	assert.Equal(t, uint32(1024), h.memory)
}
