package hcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/openclaw/clawup/internal/util/keygen"
)

func TestFingerprintMatches(t *testing.T) {
	pair, err := keygen.GenerateED25519KeyPair("clawup@test")
	require.NoError(t, err)

	parsed, _, _, _, err := ssh.ParseAuthorizedKey(pair.PublicKey)
	require.NoError(t, err)
	fingerprint := ssh.FingerprintLegacyMD5(parsed)

	match, err := fingerprintMatches(fingerprint, string(pair.PublicKey))
	require.NoError(t, err)
	assert.True(t, match)

	other, err := keygen.GenerateED25519KeyPair("clawup@other")
	require.NoError(t, err)
	match, err = fingerprintMatches(fingerprint, string(other.PublicKey))
	require.NoError(t, err)
	assert.False(t, match, "a different key must not match the stored fingerprint")

	_, err = fingerprintMatches(fingerprint, "not a public key")
	assert.Error(t, err)
}
