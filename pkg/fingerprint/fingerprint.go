// Package fingerprint computes content fingerprints for dataset payloads.
//
// A fingerprint is a blake2b-512 tree hash: the payload is cut into leaves,
// each leaf is hashed, and the leaf digests are folded into one root digest.
// Fingerprints of identical content are identical regardless of how the
// payload was buffered on the way in.
package fingerprint

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	units "github.com/docker/go-units"
	blake2b "github.com/minio/blake2b-simd"
)

// KeySize is the byte length of a fingerprint.
const KeySize = 64

// Key is a dataset fingerprint.
type Key [KeySize]byte

// String renders the fingerprint in hex.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// ParseKey decodes a hex rendered fingerprint.
func ParseKey(s string) (Key, error) {
	var k Key
	data, err := hex.DecodeString(s)
	if err != nil {
		return k, fmt.Errorf("fingerprint is not valid hex: %w", err)
	}
	if len(data) != KeySize {
		return k, fmt.Errorf("fingerprint must be %d bytes, got %d", KeySize, len(data))
	}
	copy(k[:], data)
	return k, nil
}

// Option customizes a Maker.
type Option func(*Maker)

// LeafSize sets the tree leaf size in bytes.
func LeafSize(sz int64) Option {
	return func(m *Maker) {
		if sz > 0 {
			m.leafSize = sz
		}
	}
}

// New builds a fingerprint maker. The default leaf size is 2MB, plenty for
// the metadata-adjacent payloads datasets hold.
func New(opts ...Option) *Maker {
	m := &Maker{
		leafSize: 2 * units.MiB,
	}
	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Maker computes fingerprints with a fixed leaf size.
type Maker struct {
	leafSize int64
}

// Fingerprint consumes the reader and yields the fingerprint of its content
// together with the number of bytes read.
func (m *Maker) Fingerprint(r io.Reader) (Key, int64, error) {
	w, err := m.NewWriter()
	if err != nil {
		var key Key
		return key, 0, err
	}
	if _, err = io.Copy(w, r); err != nil {
		var key Key
		return key, w.Size(), err
	}
	return w.Sum(), w.Size(), nil
}

// NewWriter builds an io.Writer computing the fingerprint of whatever is
// written through it, so payloads can be hashed while they stream into a
// store.
func (m *Maker) NewWriter() (*Writer, error) {
	root, err := blake2b.New(&blake2b.Config{Size: KeySize})
	if err != nil {
		return nil, err
	}
	leaf, err := blake2b.New(&blake2b.Config{Size: KeySize})
	if err != nil {
		return nil, err
	}
	return &Writer{
		leafSize: m.leafSize,
		root:     root,
		leaf:     leaf,
	}, nil
}

// Writer folds written bytes into a tree hash.
type Writer struct {
	leafSize int64
	root     hash.Hash
	leaf     hash.Hash
	inLeaf   int64
	total    int64
}

func (w *Writer) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		take := w.leafSize - w.inLeaf
		if take > int64(len(p)) {
			take = int64(len(p))
		}
		if _, err := w.leaf.Write(p[:take]); err != nil {
			return written - len(p), err
		}
		w.inLeaf += take
		w.total += take
		p = p[take:]
		if w.inLeaf == w.leafSize {
			if _, err := w.root.Write(w.leaf.Sum(nil)); err != nil {
				return written - len(p), err
			}
			w.leaf.Reset()
			w.inLeaf = 0
		}
	}
	return written, nil
}

// Size yields the number of bytes written so far.
func (w *Writer) Size() int64 {
	return w.total
}

// Sum finalizes the tree and yields the fingerprint. The writer must not
// be written to afterwards.
func (w *Writer) Sum() Key {
	var key Key
	if w.inLeaf > 0 || w.total == 0 {
		_, _ = w.root.Write(w.leaf.Sum(nil))
		w.leaf.Reset()
		w.inLeaf = 0
	}
	copy(key[:], w.root.Sum(nil))
	return key
}
