// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// loadConfig merges config file and environment values over the built-in
// defaults. Unset keys keep their defaults.
func loadConfig() types.PipelineConfig {
	cfg := types.DefaultConfig()

	if v := viper.GetString("feed.base_url"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := viper.GetDuration("feed.timeout"); v > 0 {
		cfg.Feed.Timeout = v
	}
	if v := viper.GetString("feed.user_agent"); v != "" {
		cfg.Feed.UserAgent = v
	}
	if viper.IsSet("feed.max_retries") {
		cfg.Feed.MaxRetries = viper.GetInt("feed.max_retries")
	}
	if v := viper.GetInt("feed.max_results"); v > 0 {
		cfg.Feed.MaxResults = v
	}
	if v := viper.GetInt("feed.years_back"); v > 0 {
		cfg.Feed.YearsBack = v
	}

	if v := viper.GetDuration("extraction.timeout"); v > 0 {
		cfg.Extraction.Timeout = v
	}
	if v := viper.GetInt("extraction.max_concurrent"); v > 0 {
		cfg.Extraction.MaxConcurrent = v
	}
	if v := viper.GetInt("extraction.max_full_text_length"); v > 0 {
		cfg.Extraction.MaxFullTextLength = v
	}

	if v := viper.GetInt("ranking.max_features"); v > 0 {
		cfg.Ranking.MaxFeatures = v
	}
	if viper.IsSet("ranking.bigrams") {
		cfg.Ranking.Bigrams = viper.GetBool("ranking.bigrams")
	}
	if viper.IsSet("ranking.min_relevance_score") {
		cfg.Ranking.MinRelevanceScore = viper.GetFloat64("ranking.min_relevance_score")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetInt("cache.ttl_hours"); v > 0 {
		cfg.Cache.TTLHours = v
	}

	if viper.IsSet("request_interval") {
		cfg.RequestInterval = viper.GetDuration("request_interval")
	}

	return cfg
}
