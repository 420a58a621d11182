package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dynsig/dynsig/pkg/cache"
	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
	"github.com/dynsig/dynsig/pkg/events"
	"github.com/dynsig/dynsig/pkg/graphio"
	"github.com/dynsig/dynsig/pkg/netspec"
	"github.com/dynsig/dynsig/pkg/observability"
	"github.com/dynsig/dynsig/pkg/order"
	"github.com/dynsig/dynsig/pkg/pattern"
	"github.com/dynsig/dynsig/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → pattern → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	network, decodeHit, err := r.DecodeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, wrapStage("decode", err)
	}
	result.Network = network
	result.Names = VariableNames(network)
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.NodeCount = network.Graph.VertexCount()
	result.Stats.EdgeCount = network.Graph.EdgeCount()
	result.CacheInfo.DecodeHit = decodeHit

	// Content hash for cache keys and API responses
	if data, err := graphio.MarshalGraph(network.Graph, network.Essential); err == nil {
		result.NetworkHash = cache.Hash(data)
	}

	r.Logger.Info("decoded input",
		"run_id", result.RunID,
		"source", opts.Source(),
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Pattern
	patternStart := time.Now()
	pg, record, patternHit, err := r.BuildPatternWithCacheInfo(ctx, network, opts)
	if err != nil {
		return nil, wrapStage("pattern", err)
	}
	result.Pattern = pg
	result.Record = record
	result.Stats.PatternTime = time.Since(patternStart)
	result.Stats.PatternSize = pg.VertexCount()
	result.CacheInfo.PatternHit = patternHit

	if data, err := graphio.MarshalGraph(pg, nil); err == nil {
		result.PatternHash = cache.Hash(data)
	}

	r.Logger.Info("enumerated pattern graph",
		"run_id", result.RunID,
		"antichains", result.Stats.PatternSize,
		"dimension", record.Dimension,
		"duration", result.Stats.PatternTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, pg, record, opts)
	if err != nil {
		return nil, wrapStage("render", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"run_id", result.RunID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DecodeWithCacheInfo decodes the input source with caching and returns
// cache hit info.
func (r *Runner) DecodeWithCacheInfo(ctx context.Context, opts Options) (*netspec.Network, bool, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	source := opts.Source()
	input, err := decodeInput(opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.NetworkKey(cache.Hash(input))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if wire, err := graphio.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "network")
				g, essential := wire.ToDigraph()
				return &netspec.Network{Graph: g, Essential: essential}, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "network")
	}

	// Decode
	start := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, source)
	network, err := Decode(opts)
	observability.Pipeline().OnDecodeComplete(ctx, source, nodeCount(network), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := graphio.MarshalGraph(network.Graph, network.Essential); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLNetwork)
		observability.Cache().OnCacheSet(ctx, "network", len(data))
	}

	return network, false, nil // Cache miss
}

// Decode is a convenience wrapper around the decode stage without caching.
func Decode(opts Options) (*netspec.Network, error) {
	if opts.Spec != "" {
		return netspec.Decode(opts.Spec)
	}
	g, err := events.Build(opts.Events)
	if err != nil {
		return nil, err
	}
	return &netspec.Network{Graph: g, Essential: nil}, nil
}

// BuildPatternWithCacheInfo enumerates the pattern graph with caching and
// returns cache hit info. The poset is the transitive closure of the
// decoded digraph, which must be acyclic.
func (r *Runner) BuildPatternWithCacheInfo(ctx context.Context, network *netspec.Network, opts Options) (*digraph.Graph, pattern.Record, bool, error) {
	r.applyLogger(&opts)

	names := VariableNames(network)
	dim := len(names)

	networkData, err := graphio.MarshalGraph(network.Graph, network.Essential)
	if err != nil {
		return nil, pattern.Record{}, false, err
	}
	cacheKey := r.Keyer.PatternKey(cache.Hash(networkData), opts.patternKeyOpts(dim))

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if pg, record, err := unmarshalPatternPayload(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "pattern")
				return pg, record, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "pattern")
	}

	// Enumerate
	start := time.Now()
	observability.Pipeline().OnPatternStart(ctx, network.Graph.VertexCount())
	pg, record, err := BuildPattern(network, names, opts.FinalLabel(dim))
	size := 0
	if pg != nil {
		size = pg.VertexCount()
	}
	observability.Pipeline().OnPatternComplete(ctx, size, time.Since(start), err)
	if err != nil {
		return nil, pattern.Record{}, false, err
	}

	// Cache the result
	if data, err := marshalPatternPayload(pg, record); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPattern)
		observability.Cache().OnCacheSet(ctx, "pattern", len(data))
	}

	return pg, record, false, nil // Cache miss
}

// BuildPattern runs the pattern stage without caching: poset construction
// over the transitive closure, antichain enumeration, record assembly.
func BuildPattern(network *netspec.Network, names []string, label uint64) (*digraph.Graph, pattern.Record, error) {
	p, err := order.New(network.Graph)
	if err != nil {
		if errors.Is(err, order.ErrCyclicGraph) {
			err = apperr.Wrap(apperr.ErrCodeCyclicGraph, err, "input digraph is not a partial order")
		}
		return nil, pattern.Record{}, err
	}
	pg := pattern.Build(p)
	record, err := pattern.NewRecord(p.Hasse(), names, label)
	if err != nil {
		return nil, pattern.Record{}, err
	}
	return pg.Digraph(), record, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, pg *digraph.Graph, record pattern.Record, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	patternData, err := graphio.MarshalGraph(pg, nil)
	if err != nil {
		return nil, false, err
	}
	patternHash := cache.Hash(patternData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(patternHash, opts.artifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, pg, record, opts.Formats)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(patternHash, opts.artifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render generates the requested formats from a pattern graph and record
// without caching. DOT is generated once and reused for SVG and PNG.
func Render(ctx context.Context, pg *digraph.Graph, record pattern.Record, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(pg, nodelink.Options{EdgeLabels: true})
		}
		return dot
	}

	for _, format := range formats {
		switch format {
		case FormatJSON:
			data, err := record.Marshal()
			if err != nil {
				return nil, err
			}
			artifacts[FormatJSON] = data
		case FormatDOT:
			artifacts[FormatDOT] = []byte(dotSource())
		case FormatSVG:
			data, err := nodelink.RenderSVG(ctx, dotSource())
			if err != nil {
				return nil, err
			}
			artifacts[FormatSVG] = data
		case FormatPNG:
			data, err := nodelink.RenderPNG(ctx, dotSource())
			if err != nil {
				return nil, err
			}
			artifacts[FormatPNG] = data
		default:
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
	}
	return artifacts, nil
}

// VariableNames returns the distinct vertex labels of the decoded digraph
// in vertex id order. For network specs this is the declaration order of
// node names; for event series it is the first-appearance order of event
// labels, matching the index space of pattern records.
func VariableNames(network *netspec.Network) []string {
	seen := make(map[string]bool)
	var names []string
	for _, v := range network.Graph.Vertices() {
		label := network.Graph.VertexLabel(v)
		if !seen[label] {
			seen[label] = true
			names = append(names, label)
		}
	}
	return names
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// wrapStage attaches the stage name while keeping the original error code
// visible to callers checking with apperr.Is.
func wrapStage(stage string, err error) error {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	return apperr.Wrap(code, err, "%s stage", stage)
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// decodeInput returns the canonical bytes identifying the decode input
// for cache keying.
func decodeInput(opts Options) ([]byte, error) {
	if opts.Spec != "" {
		return []byte(opts.Spec), nil
	}
	return json.Marshal(opts.Events)
}

func nodeCount(n *netspec.Network) int {
	if n == nil {
		return 0
	}
	return n.Graph.VertexCount()
}

// patternPayload is the cached form of the pattern stage output: the
// pattern digraph in wire format plus the assembled record.
type patternPayload struct {
	Graph  graphio.Graph  `json:"graph"`
	Record pattern.Record `json:"record"`
}

func marshalPatternPayload(pg *digraph.Graph, record pattern.Record) ([]byte, error) {
	return json.Marshal(patternPayload{
		Graph:  graphio.FromDigraph(pg, nil),
		Record: record,
	})
}

func unmarshalPatternPayload(data []byte) (*digraph.Graph, pattern.Record, error) {
	var payload patternPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, pattern.Record{}, err
	}
	g, _ := payload.Graph.ToDigraph()
	return g, payload.Record, nil
}
