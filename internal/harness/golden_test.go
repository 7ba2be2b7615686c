package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestTraceSnapshot_Marshal(t *testing.T) {
	snap := TraceSnapshot{
		ScenarioName: "one",
		Rules:        "system",
		Trace:        []StepResult{{Step: 0, Op: OpWithDay, Error: "INVALID_ARGUMENT"}},
	}
	data, err := snap.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{
  "scenario_name": "one",
  "rules": "system",
  "trace": [
    {
      "step": 0,
      "op": "with_day",
      "error": "INVALID_ARGUMENT"
    }
  ]
}
`, string(data))
}
