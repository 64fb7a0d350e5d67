// Package rand generates random test data: raw bytes, strings, and names
// restricted to the character set accepted by the store naming rules.
package rand

import (
	"bytes"
	"math/rand"
	"sync"
	"time"
)

// Bytes returns a random slice of bytes.
func Bytes(n int) []byte {
	return randBytes(n)
}

// String returns a random string.
func String(n int) string {
	return string(randBytes(n))
}

// LetterBytes returns a random slice of bytes picked in the [0-9]|[a-z] range.
func LetterBytes(n int) []byte {
	return randLetterBytes(n)
}

// LetterString returns a random string picked in the [0-9]|[a-z] range.
func LetterString(n int) string {
	return string(randLetterBytes(n))
}

var (
	onceSource  sync.Once
	rgen        *rand.Rand
	randMutex   sync.Mutex
	onceLetters sync.Once
	letters     []byte
)

func seed() {
	rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
}

func randBytes(n int) []byte {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	_, _ = rgen.Read(buf)
	randMutex.Unlock()
	return buf
}

func makeLetters() {
	// padded with extra "a" to cover the full range of uint8: speed is
	// traded off against exact letter frequency
	letters = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz0123456789a"), 7)
}

func randLetterBytes(n int) []byte {
	onceLetters.Do(makeLetters)
	buf := randBytes(n)
	for i, b := range buf {
		buf[i] = letters[b]
	}
	return buf
}
