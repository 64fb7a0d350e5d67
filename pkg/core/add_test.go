package core

import (
	"context"
	"testing"
	"time"

	"github.com/oneconcern/odtools/pkg/core/status"
	"github.com/oneconcern/odtools/pkg/model"
	storestatus "github.com/oneconcern/odtools/pkg/store/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := testRoot(t)
	require.NoError(t, SetDescription(ctx, root, "pilot study"))

	subject, err := AddSubject(ctx, root, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", subject.Name())

	// the subject inherits the root attributes, with its mark added
	meta, err := EntryMetadata(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, "pilot study", metaString(meta, model.DescriptionKey))
	assert.Equal(t, "alice", metaString(meta, model.SubjectKey))

	// idempotent
	again, err := AddSubject(ctx, root, "alice")
	require.NoError(t, err)
	assert.Equal(t, subject.Path(), again.Path())
}

func TestAddSubjectPreconditions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := testRoot(t)

	_, err := AddSubject(ctx, root, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNameRequired)

	_, err = AddSubject(ctx, root, "no/slash")
	require.Error(t, err)
	assert.ErrorIs(t, err, storestatus.ErrInvalidName)

	subject, err := AddSubject(ctx, root, "alice")
	require.NoError(t, err)
	_, err = AddSubject(ctx, subject, "nested")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotRoot)
}

func TestAddDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := testRoot(t)
	subject, err := AddSubject(ctx, root, "alice")
	require.NoError(t, err)

	date, err := AddDate(ctx, subject, "2020-01-02")
	require.NoError(t, err)
	meta, err := EntryMetadata(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, "alice", metaString(meta, model.SubjectKey))
	assert.Equal(t, "2020-01-02", metaString(meta, model.DateKey))

	_, err = AddDate(ctx, subject, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrDateRequired)

	_, err = AddDate(ctx, root, "2020-01-02")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotSubject)

	stamp, err := AddDateStamp(ctx, subject, time.Date(2021, 7, 14, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2021-07-14", stamp.Name())
}

func TestAddSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := testRoot(t)
	subject, err := AddSubject(ctx, root, "alice")
	require.NoError(t, err)
	date, err := AddDate(ctx, subject, "2020-01-02")
	require.NoError(t, err)

	session, err := AddSession(ctx, date, 2)
	require.NoError(t, err)
	assert.Equal(t, "2", session.Name())
	meta, err := EntryMetadata(ctx, session)
	require.NoError(t, err)
	number, err := metaInt(meta, model.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, 2, number)

	_, err = AddSession(ctx, subject, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotDate)

	fromValue, err := AddSessionValue(ctx, date, " 3 ")
	require.NoError(t, err)
	assert.Equal(t, "3", fromValue.Name())

	_, err = AddSessionValue(ctx, date, "first")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrSessionNumber)
}

func TestAddDomain(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, _, date, session, domain := testTree(t)

	// the domain inherits metadata only, with the domain definition
	meta, err := EntryMetadata(ctx, domain)
	require.NoError(t, err)
	assert.Equal(t, "alice", metaString(meta, model.SubjectKey))
	assert.Equal(t, "extracellular recordings", metaString(meta, model.DomainKey))

	// the parent session carries the domain definition under its name
	def, err := session.Attrs().Get(model.JoinAttrPath("ephys", model.DefinitionKey))
	require.NoError(t, err)
	assert.Equal(t, "extracellular recordings", def)

	// nested domains and runs
	run, err := AddRun(ctx, domain, 1, "first pass")
	require.NoError(t, err)
	assert.Equal(t, "1", run.Name())
	runMeta, err := EntryMetadata(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, "first pass", metaString(runMeta, model.DomainKey))

	_, err = AddDomain(ctx, date, "behavior", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNotSession)

	_, err = AddDomain(ctx, session, "", "nameless")
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrNameRequired)
}
