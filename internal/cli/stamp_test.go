package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/leapscale/internal/testutil"
)

type stampFixture struct {
	opts *StampOptions
	db   string
}

func newStampFixture(t *testing.T, format string) *stampFixture {
	t.Helper()
	db := filepath.Join(t.TempDir(), "stamps.db")
	return &stampFixture{
		opts: &StampOptions{
			RootOptions: &RootOptions{Format: format},
			DB:          db,
			IDs:         testutil.NewSequentialIDs("stamp"),
		},
		db: db,
	}
}

// run executes one stamp subcommand on a fresh command tree sharing opts.
func (f *stampFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newStampCommand(f.opts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStampSave(t *testing.T) {
	f := newStampFixture(t, "text")

	out, err := f.run(t, "save", "launch", "2016-12-31T23:59:60Z")
	require.NoError(t, err)
	assert.Equal(t, "stamp-0001  2016-12-31T23:59:60.000000000(UTC)  launch\n", out)
}

func TestStampSave_JSON(t *testing.T) {
	f := newStampFixture(t, "json")

	out, err := f.run(t, "save", "launch", "2016-12-31T23:59:60.25Z")
	require.NoError(t, err)

	var resp struct {
		Data RecordView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, RecordView{
		ID:         "stamp-0001",
		Label:      "launch",
		UTC:        "2016-12-31T23:59:60.250000000(UTC)",
		MJD:        57753,
		NanoOfDay:  86400250000000,
		LeapSecond: true,
		Seq:        1,
	}, resp.Data)
}

func TestStampSave_InvalidTimestamp(t *testing.T) {
	f := newStampFixture(t, "text")

	out, err := f.run(t, "save", "launch", "2016-12-30T23:59:60Z")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestStampSave_BlankLabel(t *testing.T) {
	f := newStampFixture(t, "text")

	out, err := f.run(t, "save", "   ", "2016-12-31T00:00:00Z")
	require.Error(t, err)
	assert.Contains(t, out, "save stamp")
}

func TestStampList_TimeOrder(t *testing.T) {
	f := newStampFixture(t, "text")

	_, err := f.run(t, "save", "launch", "2016-12-31T23:59:60Z")
	require.NoError(t, err)
	_, err = f.run(t, "save", "noon", "2016-12-31T12:00:00Z")
	require.NoError(t, err)

	out, err := f.run(t, "list")
	require.NoError(t, err)
	assert.Equal(t,
		"stamp-0002  2016-12-31T12:00:00.000000000(UTC)  noon\n"+
			"stamp-0001  2016-12-31T23:59:60.000000000(UTC)  launch\n",
		out)
}

func TestStampList_Range(t *testing.T) {
	f := newStampFixture(t, "json")

	for _, args := range [][]string{
		{"save", "noon", "2016-12-31T12:00:00Z"},
		{"save", "leap", "2016-12-31T23:59:60Z"},
		{"save", "new_year", "2017-01-01T00:00:00Z"},
	} {
		_, err := f.run(t, args...)
		require.NoError(t, err)
	}

	out, err := f.run(t, "list", "--from", "2016-12-31T23:59:60Z", "--to", "2017-01-01T00:00:00Z")
	require.NoError(t, err)

	var resp struct {
		Data RecordList `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, 3, resp.Data.Stored)
	assert.Equal(t, "leap", resp.Data.Records[0].Label)
}

func TestStampList_RangeNeedsBothBounds(t *testing.T) {
	f := newStampFixture(t, "text")

	out, err := f.run(t, "list", "--from", "2016-12-31T23:59:60Z")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "--from and --to must be given together")
}

func TestStampList_Empty(t *testing.T) {
	f := newStampFixture(t, "text")

	out, err := f.run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "No stamps.\n", out)
}

func TestStampDelete(t *testing.T) {
	f := newStampFixture(t, "text")

	_, err := f.run(t, "save", "launch", "2016-12-31T23:59:60Z")
	require.NoError(t, err)

	out, err := f.run(t, "delete", "stamp-0001")
	require.NoError(t, err)
	assert.Equal(t, "Deleted stamp-0001\n", out)

	out, err = f.run(t, "delete", "stamp-0001")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestStamp_NoDatabase(t *testing.T) {
	f := newStampFixture(t, "text")
	f.opts.DB = ""

	out, err := f.run(t, "list")
	require.Error(t, err)
	assert.Contains(t, out, "no database")
}

func TestStamp_DBFlag(t *testing.T) {
	f := newStampFixture(t, "text")
	other := filepath.Join(t.TempDir(), "other.db")

	_, err := f.run(t, "save", "--db", other, "launch", "2016-12-31T23:59:60Z")
	require.NoError(t, err)

	out, err := f.run(t, "list", "--db", other)
	require.NoError(t, err)
	assert.Contains(t, out, "launch")

	out, err = f.run(t, "list", "--db", f.db)
	require.NoError(t, err)
	assert.Equal(t, "No stamps.\n", out)
}

func TestStamp_ThroughRootCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "stamps.db")

	_, err := execute(t, "stamp", "save", "leap", "1972-06-30T23:59:60Z", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "stamp", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "1972-06-30T23:59:60.000000000(UTC)  leap")
}
