package scale

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/roach88/leapscale/internal/leapsec"
)

// BinarySize is the length of the MarshalBinary form of a UTCInstant.
const BinarySize = 16

// The persisted form of a UTCInstant is its (mjd, nano-of-day) pair. The
// rules are not persisted; decoding validates against the system rules.

type utcJSON struct {
	MJD       int64 `json:"mjd"`
	NanoOfDay int64 `json:"nano_of_day"`
}

// MarshalJSON encodes u as {"mjd":..,"nano_of_day":..}.
func (u UTCInstant) MarshalJSON() ([]byte, error) {
	return json.Marshal(utcJSON{MJD: u.mjd, NanoOfDay: u.nod})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (u *UTCInstant) UnmarshalJSON(data []byte) error {
	var v utcJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode utc instant: %w", err)
	}
	decoded, err := NewUTCInstantWithRules(v.MJD, v.NanoOfDay, leapsec.System())
	if err != nil {
		return err
	}
	*u = decoded
	return nil
}

// MarshalBinary encodes u as 16 bytes: mjd then nano-of-day, big-endian.
func (u UTCInstant) MarshalBinary() ([]byte, error) {
	buf := make([]byte, BinarySize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(u.mjd))
	binary.BigEndian.PutUint64(buf[8:16], uint64(u.nod))
	return buf, nil
}

// UnmarshalBinary decodes the form written by MarshalBinary.
func (u *UTCInstant) UnmarshalBinary(data []byte) error {
	if len(data) != BinarySize {
		return invalidArgument("decode utc instant", "want %d bytes, got %d", BinarySize, len(data))
	}
	mjd := int64(binary.BigEndian.Uint64(data[0:8]))
	nod := int64(binary.BigEndian.Uint64(data[8:16]))
	decoded, err := NewUTCInstantWithRules(mjd, nod, leapsec.System())
	if err != nil {
		return err
	}
	*u = decoded
	return nil
}

// MarshalText encodes u in its String form.
func (u UTCInstant) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText parses the String form.
func (u *UTCInstant) UnmarshalText(data []byte) error {
	decoded, err := ParseUTC(string(data))
	if err != nil {
		return err
	}
	*u = decoded
	return nil
}
