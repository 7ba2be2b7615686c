package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrongScenario = `name: wrong_expectation
description: "Expects the wrong date for MJD 41682"
steps:
  - op: utc
    mjd: 41682
    nano_of_day: 0
    expect:
      value: "1972-12-30T00:00:00.000000000(UTC)"
`

const passingScenario = `name: leap_1972
description: "The 1972-12-31 leap second"
steps:
  - op: utc
    at: "1972-12-31T23:59:60Z"
    expect:
      value: "1972-12-31T23:59:60.000000000(UTC)"
  - op: to_tai
    expect:
      value: "473385611.000000000s(TAI)"
`

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckCommand_Passes(t *testing.T) {
	out, err := execute(t, "check", "testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ leap_second_2016")
	assert.Contains(t, out, "✓ mock_leap_day")
	assert.Contains(t, out, "Check Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestCheckCommand_SingleFile(t *testing.T) {
	out, err := execute(t, "check", "testdata/scenarios/mock_leap_day.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestCheckCommand_Filter(t *testing.T) {
	out, err := execute(t, "check", "testdata/scenarios", "--filter", "leap_*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ leap_second_2016")
	assert.NotContains(t, out, "mock_leap_day")

	out, err = execute(t, "check", "testdata/scenarios", "--filter", "nothing*")
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestCheckCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "wrong.yaml", wrongScenario)

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_expectation")
	assert.Contains(t, out, "0 passed, 1 failed, 1 total")
}

func TestCheckCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken.yaml", "name: broken\nsteps: []\n")

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestCheckCommand_MissingPath(t *testing.T) {
	_, err := execute(t, "check", "testdata/no-such-dir")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenario path not found")
}

func TestCheckCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestCheckCommand_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "leap_1972.yaml", passingScenario)

	out, err := execute(t, "check", path, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ leap_1972")

	golden := filepath.Join(dir, "golden", "leap_1972.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "leap_1972"`)
	assert.Contains(t, string(data), `"rules": "system"`)

	out, err = execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed")
}

func TestCheckCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "leap_1972.yaml", passingScenario)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "leap_1972.golden"), []byte("{}\n"), 0644))

	out, err := execute(t, "check", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "trace does not match golden file")
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "leap_1972.yaml", passingScenario)
	writeScenario(t, dir, "wrong.yaml", wrongScenario)

	out, err := execute(t, "--format", "json", "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.Equal(t, 2, resp.Data.Total)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_CHECK_FAILED", resp.Error.Code)
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "leap.golden"),
		goldenFilePath(filepath.Join("scenarios", "leap.yaml")))
}
