package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCommand_Text(t *testing.T) {
	out, err := execute(t, "--table", "testdata/tables/short.yaml", "table")
	require.NoError(t, err)
	assertGolden(t, "table_short", out)
}

func TestTableCommand_SystemJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "table")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   TableView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "system", resp.Data.Name)
	assert.Equal(t, int64(10), resp.Data.BaseOffset)
	require.Len(t, resp.Data.LeapSeconds, 27)

	assert.Equal(t, LeapSecondView{Date: "1972-06-30", MJD: 41498, Adjustment: 1, Offset: 11}, resp.Data.LeapSeconds[0])
	assert.Equal(t, LeapSecondView{Date: "2016-12-31", MJD: 57753, Adjustment: 1, Offset: 37}, resp.Data.LeapSeconds[26])
}

func TestTableCommand_RejectsArgs(t *testing.T) {
	_, err := execute(t, "table", "extra")
	require.Error(t, err)
}

func TestTableCommand_At(t *testing.T) {
	out, err := execute(t, "table", "--at", "2016-12-31T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t,
		"2016-12-31  mjd 57753  TAI-UTC 36s  86401 seconds\n"+
			"last leap second: 2016-12-31  +1  TAI-UTC 37s\n",
		out)

	out, err = execute(t, "table", "--at", "2017-06-01T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "TAI-UTC 37s  86400 seconds")
	assert.Contains(t, out, "last leap second: 2016-12-31")
}

func TestTableCommand_AtBeforeFirstLeapSecond(t *testing.T) {
	out, err := execute(t, "--format", "json", "table", "--at", "1970-01-01T00:00:00Z")
	require.NoError(t, err)

	var resp struct {
		Data OffsetView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, OffsetView{
		Date:         "1970-01-01",
		MJD:          40587,
		TAIOffset:    10,
		SecondsInDay: 86400,
	}, resp.Data)
}

func TestTableCommand_AtInvalid(t *testing.T) {
	out, err := execute(t, "table", "--at", "noon")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "parse --at")
}
