package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPathCreatesIntermediates(t *testing.T) {
	m := NewAttrMap()
	require.NoError(t, m.SetPath("cell/depth/value", int64(140)))
	require.NoError(t, m.SetPath("cell/depth/unit", "um"))

	cell, ok := m.Get("cell")
	require.True(t, ok)
	depth, ok := cell.(*AttrMap).Get("depth")
	require.True(t, ok)
	assert.Equal(t, []string{"value", "unit"}, depth.(*AttrMap).Keys())

	value, ok := m.GetPath("cell/depth/value")
	require.True(t, ok)
	assert.Equal(t, int64(140), value)
	assert.True(t, m.HasPath("cell/depth"))
	assert.False(t, m.HasPath("cell/width"))
}

func TestSetPathRejectsScalarIntermediate(t *testing.T) {
	m := NewAttrMap()
	require.NoError(t, m.SetPath("cell/depth", int64(140)))
	require.Error(t, m.SetPath("cell/depth/unit", "um"))
	require.Error(t, m.SetPath("", "nothing"))
}

func TestGetPathOnScalarIntermediate(t *testing.T) {
	m := NewAttrMap()
	m.Set("leaf", "value")
	_, ok := m.GetPath("leaf/below")
	assert.False(t, ok)
	_, ok = m.GetPath("")
	assert.False(t, ok)
}

func TestDeletePath(t *testing.T) {
	m := NewAttrMap()
	require.NoError(t, m.SetPath("metadata/subject", "mouse-A12"))
	require.NoError(t, m.SetPath("metadata/date", "2021-06-01"))

	assert.True(t, m.DeletePath("metadata/date"))
	assert.False(t, m.DeletePath("metadata/date"))
	assert.False(t, m.DeletePath("metadata/subject/below"))
	assert.False(t, m.DeletePath(""))
	assert.True(t, m.HasPath("metadata/subject"))
}
