package cache

// PatternKeyOpts are the parameters that change pattern enumeration
// output for the same network.
type PatternKeyOpts struct {
	Label     uint64 `json:"label"`
	Dimension int    `json:"dimension"`
}

// ArtifactKeyOpts are the parameters that change rendered output for the
// same pattern graph.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for pipeline stages. Implementations must be
// deterministic: the same inputs always produce the same key.
type Keyer interface {
	// NetworkKey keys a decoded network by the hash of its spec text.
	NetworkKey(specHash string) string

	// PatternKey keys an enumerated pattern graph by the network content
	// hash and the enumeration options.
	PatternKey(networkHash string, opts PatternKeyOpts) string

	// ArtifactKey keys a rendered artifact by the pattern content hash
	// and the render options.
	ArtifactKey(patternHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based cache keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// NetworkKey generates a key for decoded network caching.
func (k *DefaultKeyer) NetworkKey(specHash string) string {
	return "network:" + specHash
}

// PatternKey generates a key for pattern graph caching.
func (k *DefaultKeyer) PatternKey(networkHash string, opts PatternKeyOpts) string {
	return hashKey("pattern", networkHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(patternHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", patternHash, opts)
}
