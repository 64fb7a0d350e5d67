package core

import (
	"context"
	"testing"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAttribute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, _, _, session, _ := testTree(t)

	require.NoError(t, AddAttribute(ctx, session, "temperature", 36.5,
		WithDefinition("room temperature"), WithUnit("celsius")))
	require.NoError(t, AddAttribute(ctx, session, "probe/depth", 1200,
		WithDefinition("insertion depth"), WithUnit("um")))
	require.NoError(t, CommitAttrs(ctx, session))

	attrs := session.Attrs()
	value, err := attrs.Get(model.JoinAttrPath("temperature", model.ValueKey))
	require.NoError(t, err)
	assert.Equal(t, 36.5, value)
	unit, err := attrs.Get(model.JoinAttrPath("temperature", model.UnitKey))
	require.NoError(t, err)
	assert.Equal(t, "celsius", unit)

	// GetAttribute resolves the conventional value leaf
	value, err = GetAttribute(ctx, session, "probe/depth")
	require.NoError(t, err)
	assert.EqualValues(t, 1200, value)

	err = AddAttribute(ctx, session, "", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNameRequired)
}

func TestAddAttributeStagesOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root, _, _, session, _ := testTree(t)

	require.NoError(t, AddAttribute(ctx, session, "weight", 21.3,
		WithDefinition("body weight"), WithUnit("g")))

	// staged but not committed: a fresh view of the same entry sees nothing
	fresh := reopen(ctx, t, root, session.Path())
	has, err := fresh.Attrs().Has("weight")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, CommitAttrs(ctx, session))
	fresh = reopen(ctx, t, root, session.Path())
	has, err = fresh.Attrs().Has("weight")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestApplyAttribute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, _, _, session, _ := testTree(t)

	attr := model.NewAttribute(model.WithDefinition("stimulation protocol"))
	attr.AddValue("frequency", 40, "pulse frequency", "Hz").
		AddValue("amplitude", 0.8, "pulse amplitude", "mA")

	require.NoError(t, ApplyAttribute(ctx, session, "stimulation", attr))
	require.NoError(t, CommitAttrs(ctx, session))

	attrs := session.Attrs()
	def, err := attrs.Get(model.JoinAttrPath("stimulation", model.DefinitionKey))
	require.NoError(t, err)
	assert.Equal(t, "stimulation protocol", def)
	value, err := attrs.Get(model.JoinAttrPath("stimulation", "frequency", model.ValueKey))
	require.NoError(t, err)
	assert.EqualValues(t, 40, value)

	err = ApplyAttribute(ctx, session, "", attr)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNameRequired)
}
