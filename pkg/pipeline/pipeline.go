// Package pipeline provides the core decode → pattern → render pipeline.
//
// This package implements the complete flow from an input source (network
// spec text or extremum event series) to a pattern record and rendered
// artifacts. CLI and API components share it, so behavior and caching are
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Parse a network spec or build the precedence digraph from events
//  2. Pattern: Construct the poset and enumerate the pattern graph
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Spec:    specText,
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages without caching:
//
//	// Decode only
//	network, err := pipeline.Decode(opts)
//
//	// Pattern with existing network
//	pg, record, err := pipeline.BuildPattern(network, names, label)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dynsig/dynsig/pkg/cache"
	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
	"github.com/dynsig/dynsig/pkg/events"
	"github.com/dynsig/dynsig/pkg/netspec"
	"github.com/dynsig/dynsig/pkg/pattern"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Source constants identifying the decode input kind.
const (
	SourceSpec   = "spec"
	SourceEvents = "events"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pattern pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Decode options: exactly one of Spec or Events must be set.
	Spec   string         `json:"spec,omitempty"`
	Events []events.Event `json:"events,omitempty"`

	// Pattern options. Label is the bit-encoded final-state descriptor;
	// when zero it is derived from Decreasing and Increasing once the
	// dimension is known.
	Label      uint64 `json:"label,omitempty"`
	Decreasing []int  `json:"decreasing,omitempty"`
	Increasing []int  `json:"increasing,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache on reads and overwrites stale entries.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Source returns which decode input kind the options carry.
func (o *Options) Source() string {
	if o.Spec != "" {
		return SourceSpec
	}
	return SourceEvents
}

// FinalLabel resolves the final-state descriptor for the given dimension:
// an explicit Label wins, otherwise Decreasing and Increasing are encoded.
func (o *Options) FinalLabel(dim int) uint64 {
	if o.Label != 0 {
		return o.Label
	}
	return pattern.FinalState(dim, o.Decreasing, o.Increasing)
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := apperr.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for decoding.
func (o *Options) ValidateForDecode() error {
	if o.Spec == "" && len(o.Events) == 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "spec or events is required")
	}
	if o.Spec != "" && len(o.Events) > 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "spec and events are mutually exclusive")
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return apperr.ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// patternKeyOpts returns cache key options for pattern enumeration.
func (o *Options) patternKeyOpts(dim int) cache.PatternKeyOpts {
	return cache.PatternKeyOpts{
		Label:     o.FinalLabel(dim),
		Dimension: dim,
	}
}

// artifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this pipeline execution in logs and API responses.
	RunID uuid.UUID

	// Network is the decoded input digraph with essential flags.
	Network *netspec.Network

	// NetworkHash is the content hash of the decoded network.
	NetworkHash string

	// Names are the variable names in canonical order; Record indices
	// refer to this list.
	Names []string

	// Pattern is the enumerated pattern graph.
	Pattern *digraph.Graph

	// PatternHash is the content hash of the pattern graph.
	PatternHash string

	// Record is the structured pattern for the external matcher.
	Record pattern.Record

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	PatternSize int
	DecodeTime  time.Duration
	PatternTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DecodeHit  bool // Whether the decoded network came from cache
	PatternHit bool // Whether the pattern graph came from cache
	RenderHit  bool // Whether all artifacts came from cache
}
