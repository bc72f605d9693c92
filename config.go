package xorfilter

// Option configures a single Populate call. The defaults applied by
// resolveOptions (zero-fill, 100 retry attempts, seed derived from
// splitmix64(1)) match the reference implementation's hardcoded behavior.
type Option func(*buildConfig)

type buildConfig struct {
	uniformRandomFill bool
	maxIterations     int
	seed              uint64
	hasSeed           bool
	randSource        func(n int) []byte
}

const defaultMaxIterations = 100

func resolveOptions(opts ...Option) *buildConfig {
	cfg := &buildConfig{
		maxIterations: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithUniformRandomFill causes table cells never touched by back-assignment
// to be filled with uniformly random bits instead of zero. This marginally
// lowers the false-positive rate at the cost of build time; it never
// affects correctness (the no-false-negatives invariant is unaffected).
func WithUniformRandomFill() Option {
	return func(c *buildConfig) { c.uniformRandomFill = true }
}

// WithMaxIterations overrides the default cap (100) on seed-rotation build
// attempts before Populate gives up and returns a BuildError of kind
// ErrKindRetriesExceeded.
func WithMaxIterations(n int) Option {
	return func(c *buildConfig) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithSeed sets the starting state of the splitmix64 seed schedule, making
// construction reproducible across runs. The first build attempt uses the
// first splitmix64 output from this state (not the value itself), and later
// retry attempts (on peeling failure) take the following outputs, so the
// whole attempt sequence remains reproducible.
func WithSeed(seed uint64) Option {
	return func(c *buildConfig) {
		c.seed = seed
		c.hasSeed = true
	}
}

// WithRandSource supplies the byte source consulted when
// WithUniformRandomFill is set. It is never called otherwise. The default
// source is deterministic (seeded off the build seed), never crypto/rand,
// so that two Populate calls with the same WithSeed produce byte-identical
// filters per the package's determinism property.
func WithRandSource(source func(n int) []byte) Option {
	return func(c *buildConfig) { c.randSource = source }
}

// fillRandom returns n bytes from the configured random source, defaulting
// to a splitmix64 stream reseeded from the filter's chosen build seed.
func (c *buildConfig) fillRandom(n int, seed uint64) []byte {
	if c.randSource != nil {
		return c.randSource(n)
	}
	out := make([]byte, n)
	state := seed
	for i := 0; i < n; i += 8 {
		v := splitmix64(&state)
		for j := 0; j < 8 && i+j < n; j++ {
			out[i+j] = byte(v >> (8 * j))
		}
	}
	return out
}
