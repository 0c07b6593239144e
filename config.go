package retix

// Config tunes compilation behavior. Zero-value Config is not meaningful;
// always start from DefaultConfig.
type Config struct {
	// MaxCountedRepeat caps n in a `{m,n}` repetition. Patterns whose upper
	// bound exceeds this are rejected with ErrCountTooLarge rather than
	// unrolled, guarding against pathological compile-time blowup.
	MaxCountedRepeat int

	// EnableLiteralScan toggles the Aho-Corasick restart-anchor accelerator
	// for patterns that are a pure alternation of literals. The DFA matcher
	// runs on every pattern either way; with this off, each failed attempt
	// advances the restart anchor by one byte.
	EnableLiteralScan bool
}

// DefaultConfig returns the configuration used by Compile and MustCompile.
func DefaultConfig() Config {
	return Config{
		MaxCountedRepeat:  1000,
		EnableLiteralScan: true,
	}
}
