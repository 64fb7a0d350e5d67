package model

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/gofuzz"
	"github.com/oneconcern/odtools/internal/rand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestAttrMapOrder(t *testing.T) {
	m := NewAttrMap()
	m.Set("b", int64(1))
	m.Set("a", "x")
	m.Set("c", true)
	require.Equal(t, []string{"b", "a", "c"}, m.Keys())
	require.Equal(t, 3, m.Len())

	// replacing keeps the original position
	m.Set("a", "y")
	require.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, "y", v)

	require.True(t, m.Delete("b"))
	require.False(t, m.Delete("b"))
	require.Equal(t, []string{"a", "c"}, m.Keys())
	require.False(t, m.Has("b"))
	require.True(t, m.Has("c"))

	_, ok = m.Get("nope")
	require.False(t, ok)
}

func TestAttrMapNilSafety(t *testing.T) {
	var m *AttrMap
	require.Equal(t, 0, m.Len())
	require.Nil(t, m.Keys())
	require.False(t, m.Has("x"))
	require.False(t, m.Delete("x"))
	require.NotNil(t, m.Copy())
	require.True(t, m.Equal(NewAttrMap()))
}

func TestAttrMapCopy(t *testing.T) {
	m := NewAttrMap()
	nested := NewAttrMap()
	nested.Set("depth", int64(120))
	m.Set("cell", nested)
	m.Set("tags", []AttrValue{"a", "b"})

	clone := m.Copy()
	require.True(t, m.Equal(clone))

	clonedCell, ok := clone.Get("cell")
	require.True(t, ok)
	clonedCell.(*AttrMap).Set("depth", int64(500))
	clonedTags, ok := clone.Get("tags")
	require.True(t, ok)
	clonedTags.([]AttrValue)[0] = "z"

	// the original is isolated from the copy
	originalCell, _ := m.Get("cell")
	depth, _ := originalCell.(*AttrMap).Get("depth")
	require.Equal(t, int64(120), depth)
	originalTags, _ := m.Get("tags")
	require.Equal(t, "a", originalTags.([]AttrValue)[0])
	require.False(t, m.Equal(clone))
}

func TestAttrMapEqual(t *testing.T) {
	a := NewAttrMap()
	a.Set("x", int64(1))
	a.Set("y", int64(2))

	b := NewAttrMap()
	b.Set("y", int64(2))
	b.Set("x", int64(1))

	// key order is part of the document
	require.False(t, a.Equal(b))

	c := NewAttrMap()
	c.Set("x", int64(1))
	c.Set("y", int64(2))
	require.True(t, a.Equal(c))

	c.Set("y", float64(2))
	require.False(t, a.Equal(c))
}

func TestAttrMapYAML(t *testing.T) {
	m := NewAttrMap()
	m.Set("b", int64(1))
	m.Set("a", "x")

	text, err := yaml.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, "b: 1\na: x\n", string(text))

	back := NewAttrMap()
	require.NoError(t, yaml.Unmarshal(text, back))
	require.True(t, m.Equal(back))

	// nested dictionaries and lists keep their order through a round-trip
	nested := NewAttrMap()
	nested.Set("z", true)
	nested.Set("y", "low")
	m.Set("nested", nested)
	m.Set("list", []AttrValue{int64(1), "two"})

	text, err = yaml.Marshal(m)
	require.NoError(t, err)
	back = NewAttrMap()
	require.NoError(t, yaml.Unmarshal(text, back))
	require.True(t, m.Equal(back), "got: %s", string(text))

	again, err := yaml.Marshal(back)
	require.NoError(t, err)
	require.Equal(t, string(text), string(again))
}

func TestAttrMapYAMLDates(t *testing.T) {
	// plain date scalars come back as names, not timestamps
	text := []byte("metadata:\n  date: 2021-06-01\n  when: 2021-06-01T10:30:00Z\n")
	m := NewAttrMap()
	require.NoError(t, yaml.Unmarshal(text, m))

	meta, ok := m.Get(MetadataEntry)
	require.True(t, ok)
	date, ok := meta.(*AttrMap).Get(DateKey)
	require.True(t, ok)
	require.Equal(t, "2021-06-01", date)
	when, ok := meta.(*AttrMap).Get("when")
	require.True(t, ok)
	require.Equal(t, "2021-06-01T10:30:00Z", when)
}

func TestAttrMapJSON(t *testing.T) {
	m := NewAttrMap()
	m.Set("b", int64(1))
	m.Set("a", "x")
	nested := NewAttrMap()
	nested.Set("z", true)
	nested.Set("y", nil)
	m.Set("nested", nested)
	m.Set("list", []AttrValue{int64(1), "two", 4.5})

	buf, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":"x","nested":{"z":true,"y":null},"list":[1,"two",4.5]}`, string(buf))

	back := NewAttrMap()
	require.NoError(t, json.Unmarshal(buf, back))
	require.True(t, m.Equal(back))

	// numbers keep their integral or fractional nature
	n, _ := back.Get("b")
	require.Equal(t, int64(1), n)
	l, _ := back.Get("list")
	require.Equal(t, 4.5, l.([]AttrValue)[2])

	require.Error(t, json.Unmarshal([]byte(`[1,2]`), NewAttrMap()))
	require.Error(t, json.Unmarshal([]byte(`{`), NewAttrMap()))
}

type normalizeFixture struct {
	name     string
	input    interface{}
	expected AttrValue
}

func normalizeTestCases() []normalizeFixture {
	ordered := NewAttrMap()
	ordered.Set("z", int64(1))
	ordered.Set("a", int64(2))

	sorted := NewAttrMap()
	sorted.Set("1", "a")
	sorted.Set("b", int64(2))

	return []normalizeFixture{
		{
			name:     "nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "map slice keeps order",
			input:    yaml.MapSlice{{Key: "z", Value: 1}, {Key: "a", Value: 2}},
			expected: ordered,
		},
		{
			name:     "interface map gets sorted keys",
			input:    map[interface{}]interface{}{"b": 2, 1: "a"},
			expected: sorted,
		},
		{
			name:     "string map gets sorted keys",
			input:    map[string]interface{}{"b": 2, "1": "a"},
			expected: sorted,
		},
		{
			name:     "integral number",
			input:    json.Number("42"),
			expected: int64(42),
		},
		{
			name:     "fractional number",
			input:    json.Number("4.5"),
			expected: 4.5,
		},
		{
			name:     "small width integer",
			input:    uint8(7),
			expected: int64(7),
		},
		{
			name:     "float32",
			input:    float32(1.5),
			expected: 1.5,
		},
		{
			name:     "unsigned in the signed domain",
			input:    uint64(42),
			expected: int64(42),
		},
		{
			name:     "unsigned beyond MaxInt64 keeps its sign",
			input:    uint64(math.MaxUint64),
			expected: float64(math.MaxUint64),
		},
		{
			name:     "list",
			input:    []interface{}{1, "x"},
			expected: []AttrValue{int64(1), "x"},
		},
		{
			name:     "midnight time becomes a date name",
			input:    time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
			expected: "2021-06-01",
		},
		{
			name:     "timestamp becomes rfc3339",
			input:    time.Date(2021, 6, 1, 10, 30, 0, 0, time.UTC),
			expected: "2021-06-01T10:30:00Z",
		},
	}
}

func TestNormalizeValue(t *testing.T) {
	for _, toPin := range normalizeTestCases() {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			t.Parallel()
			normalized := NormalizeValue(testcase.input)
			if expected, ok := testcase.expected.(*AttrMap); ok {
				require.True(t, expected.Equal(normalized.(*AttrMap)),
					"expected %v, got %v", expected, normalized)
				return
			}
			assert.Equal(t, testcase.expected, normalized)
		})
	}
}

type fuzzedLeaf struct {
	Str   string
	Num   int64
	Ratio float64
	Flag  bool
}

func (l fuzzedLeaf) number() AttrValue {
	if l.Num%2 == 0 {
		return l.Num
	}
	// serialized forms cannot tell an integral float from an integer
	ratio := l.Ratio
	if ratio == math.Trunc(ratio) {
		ratio += 0.5
	}
	return ratio
}

func buildFuzzedMap(f *fuzz.Fuzzer, depth int) *AttrMap {
	m := NewAttrMap()
	var leaves []fuzzedLeaf
	f.Fuzz(&leaves)
	for i, leaf := range leaves {
		key := fmt.Sprintf("k%d_%s", i, rand.LetterString(5))
		switch i % 3 {
		case 0:
			m.Set(key, leaf.Str)
		case 1:
			m.Set(key, leaf.number())
		default:
			m.Set(key, []AttrValue{leaf.Str, leaf.Num, leaf.Flag})
		}
	}
	if depth > 0 {
		m.Set("nested", buildFuzzedMap(f, depth-1))
	}
	return m
}

func TestAttrMapFuzzedRoundTrips(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 6)
	for i := 0; i < 50; i++ {
		m := buildFuzzedMap(f, 2)

		buf, err := json.Marshal(m)
		require.NoError(t, err)
		back := NewAttrMap()
		require.NoError(t, json.Unmarshal(buf, back))
		require.Truef(t, m.Equal(back), "json round trip changed the document: %s", string(buf))

		text, err := yaml.Marshal(m)
		require.NoError(t, err)
		back = NewAttrMap()
		require.NoError(t, yaml.Unmarshal(text, back))
		require.Truef(t, m.Equal(back), "yaml round trip changed the document: %s", string(text))
	}
}
