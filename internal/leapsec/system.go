package leapsec

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed system.yaml
var systemYAML []byte

var system = sync.OnceValue(func() *Table {
	t, err := ParseYAML("system.yaml", systemYAML)
	if err != nil {
		panic(fmt.Sprintf("leapsec: embedded system table: %v", err))
	}
	return t
})

// System returns the process-wide leap-second table built from the embedded
// IERS data.
//
// The table is decoded on first use, exactly once even under concurrent
// callers, and is read-only afterwards.
func System() *Table {
	return system()
}
