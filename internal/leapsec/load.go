package leapsec

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/leapscale/internal/civil"
)

//go:embed schema.cue
var schemaCUE string

// document is the on-disk shape of a table, shared by YAML and CUE sources.
type document struct {
	Name        string     `json:"name" yaml:"name"`
	BaseOffset  int64      `json:"base_offset" yaml:"base_offset"`
	LeapSeconds []docEntry `json:"leap_seconds" yaml:"leap_seconds"`
}

type docEntry struct {
	Date   string `json:"date" yaml:"date"`
	Offset int64  `json:"offset" yaml:"offset"`
}

// LoadFile reads a table from a .yaml, .yml or .cue file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read leap second table: %w", err)
	}

	var t *Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		t, err = ParseYAML(path, data)
	case ".cue":
		t, err = ParseCUE(path, data)
	default:
		return nil, fmt.Errorf("leap second table %s: unsupported extension %q (want .yaml, .yml or .cue)", path, ext)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("leap second table loaded", "path", path, "name", t.Name(), "transitions", t.Len())
	return t, nil
}

// ParseYAML decodes a YAML table document and validates it against the
// table schema.
func ParseYAML(filename string, data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if doc.LeapSeconds == nil {
		doc.LeapSeconds = []docEntry{}
	}

	ctx := cuecontext.New()
	if _, err := validate(ctx, filename, ctx.Encode(doc)); err != nil {
		return nil, err
	}
	return doc.table()
}

// ParseCUE compiles a CUE table document, unifies it with the table schema
// and decodes the result.
func ParseCUE(filename string, data []byte) (*Table, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %w", filename, err)
	}

	unified, err := validate(ctx, filename, v)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := unified.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return doc.table()
}

func validate(ctx *cue.Context, filename string, v cue.Value) (cue.Value, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile table schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Table")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fmt.Errorf("validate %s: %w", filename, err)
	}
	return unified, nil
}

func (d document) table() (*Table, error) {
	transitions := make([]Transition, len(d.LeapSeconds))
	for i, e := range d.LeapSeconds {
		day, err := parseDate(e.Date)
		if err != nil {
			return nil, &TableError{Table: d.Name, Index: i, Message: err.Error()}
		}
		transitions[i] = Transition{Day: day, Offset: e.Offset}
	}
	return NewTable(d.Name, d.BaseOffset, transitions)
}

func parseDate(s string) (int64, error) {
	ts, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q", s)
	}
	return civil.ToMJD(civil.Date{Year: int64(ts.Year()), Month: int(ts.Month()), Day: ts.Day()}), nil
}
