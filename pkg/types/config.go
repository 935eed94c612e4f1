package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for throttled requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FeedConfig holds settings for the feed query stage.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxResults is the default maximum number of papers a search returns.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// YearsBack is the default publication-date window in years.
	YearsBack int `json:"years_back" yaml:"years_back"`
}

// ExtractionConfig holds settings for the full-text extraction stage.
type ExtractionConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxConcurrent caps the number of PDF downloads in flight at once.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`

	// MaxFullTextLength truncates extracted text beyond this many bytes.
	MaxFullTextLength int `json:"max_full_text_length" yaml:"max_full_text_length"`
}

// RankingConfig holds settings for the relevance ranking stage.
type RankingConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary size.
	MaxFeatures int `json:"max_features" yaml:"max_features"`

	// Bigrams enables word bigrams in addition to unigrams.
	Bigrams bool `json:"bigrams" yaml:"bigrams"`

	// MinRelevanceScore filters papers scoring below this threshold.
	// Kept very low so sparse corpora still return results.
	MinRelevanceScore float64 `json:"min_relevance_score" yaml:"min_relevance_score"`
}

// CacheConfig holds settings for the result cache.
type CacheConfig struct {
	// Enabled toggles the cache. A disabled cache always misses.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the cache database.
	Dir string `json:"dir" yaml:"dir"`

	// TTLHours is the entry time-to-live in hours.
	TTLHours int `json:"ttl_hours" yaml:"ttl_hours"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Feed       FeedConfig       `json:"feed" yaml:"feed"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Ranking    RankingConfig    `json:"ranking" yaml:"ranking"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`

	// RequestInterval is the minimum spacing between any two outbound
	// requests, shared process-wide across feed queries and PDF downloads.
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// DefaultConfig returns the pipeline configuration defaults.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Feed: FeedConfig{
			HTTPConfig: HTTPConfig{
				Timeout:    30 * time.Second,
				UserAgent:  "paper-scout/0.1",
				MaxRetries: 3,
			},
			BaseURL:    "https://export.arxiv.org/api/query",
			MaxResults: 10,
			YearsBack:  4,
		},
		Extraction: ExtractionConfig{
			HTTPConfig: HTTPConfig{
				Timeout:    30 * time.Second,
				UserAgent:  "paper-scout/0.1",
				MaxRetries: 3,
			},
			MaxConcurrent:     3,
			MaxFullTextLength: 50000,
		},
		Ranking: RankingConfig{
			MaxFeatures:       1000,
			Bigrams:           true,
			MinRelevanceScore: 0.001,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Dir:      "cache",
			TTLHours: 24,
		},
		RequestInterval: time.Second,
	}
}
