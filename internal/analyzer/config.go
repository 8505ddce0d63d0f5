package analyzer

// Default tuning values. The thresholds gate which candidates get
// published; everything else shapes scoring.
const (
	// DefaultMinRepeats is the minimum sibling repetition count for a
	// container to become a candidate.
	DefaultMinRepeats = 4
	// DefaultMaxCandidates caps how many collections one analysis returns.
	DefaultMaxCandidates = 5
	// DefaultMaxItemsPreview caps how many items per collection are
	// sampled through the field extractor.
	DefaultMaxItemsPreview = 5
	// DefaultMaxFieldsPerItem caps the fields extracted from one item.
	DefaultMaxFieldsPerItem = 8
	// DefaultMinConfidence is the publication threshold for collections.
	DefaultMinConfidence = 0.65
	// DefaultMinAvgFields is the minimum average field count per sampled
	// item for a candidate to survive.
	DefaultMinAvgFields = 1.0
)

// Config holds the analyzer tuning knobs.
type Config struct {
	// MinRepeats is the repetition threshold for candidate containers.
	MinRepeats int `yaml:"min_repeats" env:"ANALYZER_MIN_REPEATS"`
	// MaxCandidates is the default cap on returned collections.
	MaxCandidates int `yaml:"max_candidates" env:"ANALYZER_MAX_CANDIDATES"`
	// MaxItemsPreview is the default per-collection preview sample size.
	MaxItemsPreview int `yaml:"max_items_preview" env:"ANALYZER_MAX_ITEMS_PREVIEW"`
	// MaxFieldsPerItem caps extracted fields per item.
	MaxFieldsPerItem int `yaml:"max_fields_per_item" env:"ANALYZER_MAX_FIELDS_PER_ITEM"`
	// MinConfidence is the collection publication threshold.
	MinConfidence float64 `yaml:"min_confidence" env:"ANALYZER_MIN_CONFIDENCE"`
	// MinAvgFields is the minimum average fields per sampled item.
	MinAvgFields float64 `yaml:"min_avg_fields" env:"ANALYZER_MIN_AVG_FIELDS"`
}

// WithDefaults fills unset values with defaults.
func (c *Config) WithDefaults() {
	if c.MinRepeats <= 0 {
		c.MinRepeats = DefaultMinRepeats
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}
	if c.MaxItemsPreview <= 0 {
		c.MaxItemsPreview = DefaultMaxItemsPreview
	}
	if c.MaxFieldsPerItem <= 0 {
		c.MaxFieldsPerItem = DefaultMaxFieldsPerItem
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = DefaultMinConfidence
	}
	if c.MinAvgFields <= 0 {
		c.MinAvgFields = DefaultMinAvgFields
	}
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() *Config {
	c := &Config{}
	c.WithDefaults()
	return c
}
