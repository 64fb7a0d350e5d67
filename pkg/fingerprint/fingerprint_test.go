package fingerprint

import (
	"bytes"
	"testing"

	"github.com/oneconcern/odtools/internal/rand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIsStable(t *testing.T) {
	payload := rand.Bytes(1024)
	m := New()

	k1, n1, err := m.Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), n1)

	k2, n2, err := m.Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
	assert.Equal(t, k1, k2)

	k3, _, err := m.Fingerprint(bytes.NewReader(rand.Bytes(1024)))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestFingerprintSpansLeaves(t *testing.T) {
	payload := rand.Bytes(10_000)
	small := New(LeafSize(1024))
	large := New(LeafSize(1 << 20))

	k1, n, err := small.Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), n)

	// a different leaf size yields a different tree
	k2, _, err := large.Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	// an exact multiple of the leaf size has no trailing partial leaf
	exact := rand.Bytes(2048)
	_, n, err = small.Fingerprint(bytes.NewReader(exact))
	require.NoError(t, err)
	assert.EqualValues(t, 2048, n)
}

func TestFingerprintEmpty(t *testing.T) {
	k, n, err := New().Fingerprint(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NotEqual(t, Key{}, k)
}

func TestKeyRoundTrip(t *testing.T) {
	k, _, err := New().Fingerprint(bytes.NewReader([]byte("payload")))
	require.NoError(t, err)

	parsed, err := ParseKey(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	_, err = ParseKey("zz")
	require.Error(t, err)
	_, err = ParseKey("abcd")
	require.Error(t, err)
}
