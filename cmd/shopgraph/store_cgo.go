//go:build cgo

package main

import "github.com/dusk-indust/shopgraph/internal/graph"

// openStore opens the file-backed KuzuDB store at path.
func openStore(path string) (graph.Store, error) {
	return graph.NewKuzuFileStore(path)
}
