// Package pkg provides the core libraries for dynsig pattern construction.
//
// # Overview
//
// Dynsig turns descriptions of dynamical behavior — regulatory network
// specs or extremum event series — into pattern graphs: combinatorial
// descriptors of the orderings a signature can realize. The pkg directory
// is organized into four main areas:
//
//  1. Graph core ([digraph], [order], [pattern]) - labeled digraphs,
//     posets, and pattern graph enumeration
//  2. Input decoding ([netspec], [events]) - network spec text and
//     extremum event series
//  3. Infrastructure ([cache], [pipeline], [observability]) - caching,
//     orchestration, and instrumentation hooks
//  4. Serialization and output ([graphio], [render/nodelink]) - graph
//     JSON wire format and diagram rendering
//
// # Architecture
//
// The typical data flow through dynsig:
//
//	Network spec / event series
//	         ↓
//	    [netspec] or [events] (decode into a labeled digraph)
//	         ↓
//	    [order] (transitive closure, poset, Hasse diagram)
//	         ↓
//	    [pattern] (antichain enumeration, pattern record)
//	         ↓
//	    JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Decode a spec and enumerate its pattern graph:
//
//	import (
//	    "github.com/dynsig/dynsig/pkg/netspec"
//	    "github.com/dynsig/dynsig/pkg/order"
//	    "github.com/dynsig/dynsig/pkg/pattern"
//	)
//
//	// 1. Decode the network spec
//	network, _ := netspec.Decode("X : (A)(~B) : E\nA : :\nB : :\n")
//
//	// 2. Derive the poset of the regulation digraph
//	p, _ := order.New(network.Graph)
//
//	// 3. Enumerate the pattern graph
//	pg, _ := pattern.Build(p)
//	fmt.Println(pg.Size())
//
// # Main Packages
//
// ## Graph Core
//
// [digraph] - Labeled directed graphs with adjacency-set representation.
// Supports Warshall transitive closure, transitive reduction, and
// transpose, all preserving vertex labels.
//
// [order] - Finite posets built from acyclic digraphs. Provides maximal
// elements, down-sets, antichain canonical keys, and the Hasse diagram
// (covering relation).
//
// [pattern] - Pattern graph construction: enumerates the lattice of
// down-sets via their maximal antichains and produces the pattern record
// (poset adjacency, event index, final-state label, dimension).
//
// ## Input Decoding
//
// [netspec] - Text format for regulatory networks
// ("NAME : (ACT)(~REP) : E"). Decode builds the labeled regulation
// digraph; Encode writes it back out.
//
// [events] - Extremum event series ([label, [start, end]] intervals) and
// their precedence digraphs.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, redis, mongo, and null backends,
// plus content-addressed key derivation for networks, patterns, and
// rendered artifacts.
//
// [pipeline] - Complete pipeline (decode → pattern → render) used by the
// CLI and the HTTP API. Each stage is cached independently.
//
// [observability] - Hook interfaces for pipeline, cache, and HTTP
// instrumentation with no-op defaults.
//
// [errors] - Structured errors with stable machine-readable codes.
//
// ## Serialization and Output
//
// [graphio] - JSON node-link wire format for labeled digraphs, shared by
// the cache, the CLI, and the HTTP API.
//
// [render/nodelink] - Directed graph diagrams via Graphviz (DOT, SVG,
// PNG).
//
// ## Supporting
//
// [multisort] - Generic permutation-producing sort used by event series
// ordering.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/pattern/...  # Specific package
//	go test -run Example       # Examples only
//
// [digraph]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/digraph
// [order]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/order
// [pattern]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/pattern
// [netspec]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/netspec
// [events]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/events
// [cache]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/observability
// [errors]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/errors
// [graphio]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/graphio
// [render/nodelink]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/render/nodelink
// [multisort]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/multisort
// [buildinfo]: https://pkg.go.dev/github.com/dynsig/dynsig/pkg/buildinfo
package pkg
