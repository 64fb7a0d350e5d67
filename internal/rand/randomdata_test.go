package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterString(t *testing.T) {
	name := LetterString(20)
	require.Len(t, name, 20)
	for _, c := range name {
		assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'), "unexpected character %q", c)
	}
}

func TestBytes(t *testing.T) {
	require.Len(t, Bytes(100), 100)
	require.Len(t, String(100), 100)
	require.Len(t, LetterBytes(100), 100)
	assert.NotEqual(t, Bytes(100), Bytes(100))
}

func benchmarkRandBytes(b *testing.B, size int) {
	for n := 0; n < b.N; n++ {
		_ = randBytes(size)
	}
}

func BenchmarkRandBytes20(b *testing.B)      { benchmarkRandBytes(b, 20) }
func BenchmarkRandBytes1000(b *testing.B)    { benchmarkRandBytes(b, 1000) }
func BenchmarkRandBytes1000000(b *testing.B) { benchmarkRandBytes(b, 1000000) }

func benchmarkRandLetterBytes(b *testing.B, size int) {
	for n := 0; n < b.N; n++ {
		_ = randLetterBytes(size)
	}
}

func BenchmarkRandLetterBytes20(b *testing.B)      { benchmarkRandLetterBytes(b, 20) }
func BenchmarkRandLetterBytes1000(b *testing.B)    { benchmarkRandLetterBytes(b, 1000) }
func BenchmarkRandLetterBytes1000000(b *testing.B) { benchmarkRandLetterBytes(b, 1000000) }
