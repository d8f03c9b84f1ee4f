// Package milo is the root of the neighbourhood toolkit for differential
// abundance testing on KNN graphs of single cells.
//
// Subpackages:
//
//	core/      - thread-safe Graph and KNN list → graph conversion
//	matrix/    - dense, sparse, symmetric and diagonal labelled matrices
//	milo/      - the Experiment object, its slots and emptiness predicates
//	nhoods/    - neighbourhood adjacency, mean expression, sizes, counts, graphs
//	bfs/       - breadth-first search and connected components over core.Graph
//	codec/     - compressed matrix files (zstd, lz4)
//	config/    - YAML + environment configuration for the CLI
//	logging/   - slog-based structured logging
//	cmd/nhoodkit - command-line front end
//
// Quick start:
//
//	x, _ := matrix.NewIndicator(nCells, members, names)
//	adj, _ := nhoods.Adjacency(x, nhoods.DefaultOverlap)
//	means, _ := nhoods.Expression(x, logcounts)
//
//	go get github.com/katalvlaran/milo
package milo
