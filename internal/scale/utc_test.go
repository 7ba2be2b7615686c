package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/leapscale/internal/leapsec"
	"github.com/roach88/leapscale/internal/testutil"
)

func mustUTC(t *testing.T, mjd, nod int64) UTCInstant {
	t.Helper()
	u, err := NewUTCInstant(mjd, nod)
	require.NoError(t, err)
	return u
}

func mustUTCWithRules(t *testing.T, mjd, nod int64, rules leapsec.Rules) UTCInstant {
	t.Helper()
	u, err := NewUTCInstantWithRules(mjd, nod, rules)
	require.NoError(t, err)
	return u
}

func TestNewUTCInstant(t *testing.T) {
	for mjd := int64(-2); mjd <= 2; mjd++ {
		for nod := int64(0); nod < 10; nod++ {
			u := mustUTC(t, mjd, nod)
			assert.Equal(t, mjd, u.ModifiedJulianDay())
			assert.Equal(t, nod, u.NanoOfDay())
			assert.Same(t, leapsec.System(), u.Rules())
			assert.False(t, u.IsLeapSecond())
		}
	}
}

func TestNewUTCInstant_Rejects(t *testing.T) {
	_, err := NewUTCInstant(2, -1)
	assert.True(t, IsInvalidArgument(err))

	_, err = NewUTCInstant(2, NanosPerDay)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "must be less than")

	_, err = NewUTCInstantWithRules(2, (SecondsPerDay+1)*NanosPerSecond, testutil.AlwaysLeap{})
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "past the leap second")

	_, err = NewUTCInstantWithRules(0, 0, nil)
	assert.True(t, IsInvalidArgument(err))
}

func TestNewUTCInstant_LeapSecond(t *testing.T) {
	rules := testutil.AlwaysLeap{}
	u := mustUTCWithRules(t, 0, NanosPerDay+2, rules)
	assert.Equal(t, int64(0), u.ModifiedJulianDay())
	assert.Equal(t, int64(NanosPerDay+2), u.NanoOfDay())
	assert.Equal(t, rules, u.Rules())
	assert.True(t, u.IsLeapSecond())

	// 1972-12-31 ends with a leap second in the system table.
	sys := mustUTC(t, 41682, NanosPerDay)
	assert.True(t, sys.IsLeapSecond())
}

func TestUTCInstant_ZeroValue(t *testing.T) {
	var u UTCInstant
	assert.Same(t, leapsec.System(), u.Rules())
	assert.Equal(t, "1858-11-17T00:00:00.000000000(UTC)", u.String())
}

func TestUTCInstant_WithModifiedJulianDay(t *testing.T) {
	rules := testutil.LeapOn(1000)
	tests := []struct {
		mjd, nod, newMJD int64
		wantErr          bool
	}{
		{0, 12345, 1, false},
		{0, 12345, -1, false},
		{7, 12345, 2, false},
		{7, 12345, -2, false},
		{-99, 12345, 3, false},
		{-99, 12345, -3, false},
		{1000, NanosPerDay, 999, true},
		{1000, NanosPerDay, 1000, false},
		{1000, NanosPerDay, 1001, true},
	}
	for _, tt := range tests {
		u := mustUTCWithRules(t, tt.mjd, tt.nod, rules)
		got, err := u.WithModifiedJulianDay(tt.newMJD)
		if tt.wantErr {
			assert.True(t, IsInvalidArgument(err), "%d -> %d", tt.mjd, tt.newMJD)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.newMJD, got.ModifiedJulianDay())
		assert.Equal(t, tt.nod, got.NanoOfDay())
		assert.Equal(t, rules, got.Rules())
	}
}

func TestUTCInstant_WithNanoOfDay(t *testing.T) {
	rules := testutil.LeapOn(1000)
	tests := []struct {
		mjd, nod, newNod int64
		wantErr          bool
	}{
		{0, 12345, 1, false},
		{0, 12345, -1, true},
		{7, 12345, 2, false},
		{-99, 12345, 3, false},
		{1000, NanosPerDay, NanosPerDay - 1, false},
		{1000, 0, NanosPerDay + NanosPerSecond - 1, false},
		{1000, 0, NanosPerDay + NanosPerSecond, true},
		{999, 0, NanosPerDay, true},
	}
	for _, tt := range tests {
		u := mustUTCWithRules(t, tt.mjd, tt.nod, rules)
		got, err := u.WithNanoOfDay(tt.newNod)
		if tt.wantErr {
			assert.True(t, IsInvalidArgument(err), "%d/%d -> %d", tt.mjd, tt.nod, tt.newNod)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.mjd, got.ModifiedJulianDay())
		assert.Equal(t, tt.newNod, got.NanoOfDay())
	}
}

func TestUTCInstant_Comparisons(t *testing.T) {
	instants := []UTCInstant{
		mustUTC(t, -2, 0),
		mustUTC(t, -2, NanosPerDay-2),
		mustUTC(t, -2, NanosPerDay-1),
		mustUTC(t, -1, 0),
		mustUTC(t, -1, 1),
		mustUTC(t, -1, NanosPerDay-2),
		mustUTC(t, -1, NanosPerDay-1),
		mustUTC(t, 0, 0),
		mustUTC(t, 0, 1),
		mustUTC(t, 0, 2),
		mustUTC(t, 0, NanosPerDay-1),
		mustUTC(t, 1, 0),
		mustUTC(t, 2, 0),
	}
	for i, a := range instants {
		for j, b := range instants {
			switch {
			case i < j:
				assert.Equal(t, -1, a.Compare(b))
				assert.True(t, a.Before(b))
				assert.False(t, a.Equal(b))
			case i > j:
				assert.Equal(t, 1, a.Compare(b))
				assert.True(t, a.After(b))
				assert.False(t, a.Equal(b))
			default:
				assert.Equal(t, 0, a.Compare(b))
				assert.True(t, a.Equal(b))
			}
		}
	}
}

func TestUTCInstant_EqualIgnoresRules(t *testing.T) {
	a := mustUTC(t, 5, 100)
	b := mustUTCWithRules(t, 5, 100, testutil.AlwaysLeap{})
	assert.True(t, a.Equal(b))
}

func TestUTCInstant_CompareTo(t *testing.T) {
	a := mustUTC(t, 1, 0)
	b := mustUTC(t, 2, 0)

	got, err := b.CompareTo(a)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = a.CompareTo(&b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	_, err = a.CompareTo(nil)
	assert.True(t, IsInvalidArgument(err))

	_, err = a.CompareTo(TAIInstant{})
	assert.True(t, IsTypeMismatch(err))
}
