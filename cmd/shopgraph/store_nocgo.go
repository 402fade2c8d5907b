//go:build !cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/shopgraph/internal/graph"
)

// openStore fails: the KuzuDB backend wraps a C library and needs CGO.
func openStore(string) (graph.Store, error) {
	return nil, fmt.Errorf("this binary was built without cgo; the KuzuDB backend is unavailable")
}
