package services

import (
	"testing"

	"aavm-dashboard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultClassifier() *Classifier {
	return NewClassifier(config.LoadKeywords())
}

func TestIrrelevantTextScoresLow(t *testing.T) {
	c := defaultClassifier()

	got := c.Classify("Weekend gardening tips", "How to prune roses in autumn", "", "example.com")

	// Base score plus the flat news-value bonus, nothing else.
	assert.InDelta(t, 3.0, got.RelevanceScore, 0.01)
	assert.Equal(t, "low", got.Priority)
	assert.Equal(t, "General", got.Topic)
}

func TestScoreClampedAtTen(t *testing.T) {
	c := defaultClassifier()

	got := c.Classify(
		"Asian American healthcare and education policy shifts",
		"Immigration, voting and discrimination concerns across the community",
		"", "reuters.com")

	assert.Equal(t, 10.0, got.RelevanceScore)
	assert.Equal(t, "high", got.Priority)
}

func TestUrgentKeywordInContentForcesHighPriority(t *testing.T) {
	c := defaultClassifier()

	got := c.Classify("Weekend gardening tips", "How to prune roses",
		"Residents fear deportation after the announcement.", "example.com")

	assert.Equal(t, "high", got.Priority)
	assert.InDelta(t, 3.0, got.RelevanceScore, 0.01, "urgent keywords change priority, not score")
}

func TestTopicRuleOrderFirstMatchWins(t *testing.T) {
	c := defaultClassifier()

	// Matches both the Education and Healthcare rules; Education is first.
	got := c.Classify("School health screenings expand", "", "", "example.com")
	assert.Equal(t, "Education", got.Topic)
}

func TestTrustedSourceBonus(t *testing.T) {
	c := defaultClassifier()

	untrusted := c.Classify("Community cultural festival returns", "", "", "example.com")
	trusted := c.Classify("Community cultural festival returns", "", "", "www.reuters.com")

	assert.InDelta(t, 1.0, trusted.RelevanceScore-untrusted.RelevanceScore, 0.01)
}

func TestPriorityMonotonicInScore(t *testing.T) {
	c := defaultClassifier()
	rank := map[string]int{"low": 0, "medium": 1, "high": 2}

	// With the keywords held fixed, a higher score must never yield a
	// lower tier.
	prev := 0
	for score := 1.0; score <= 10.0; score += 0.25 {
		tier := c.priority(score, "weekend gardening tips", "")
		require.Contains(t, rank, tier)
		assert.GreaterOrEqual(t, rank[tier], prev, "tier dropped at score %.2f", score)
		prev = rank[tier]
	}

	assert.Equal(t, "low", c.priority(5.99, "weekend gardening tips", ""))
	assert.Equal(t, "medium", c.priority(6.0, "weekend gardening tips", ""))
	assert.Equal(t, "medium", c.priority(7.99, "weekend gardening tips", ""))
	assert.Equal(t, "high", c.priority(8.0, "weekend gardening tips", ""))
}

func TestClassifierIsDeterministic(t *testing.T) {
	c := defaultClassifier()

	first := c.Classify("Medicare changes hit small business owners", "A policy overview", "", "npr.org")
	second := c.Classify("Medicare changes hit small business owners", "A policy overview", "", "npr.org")

	assert.Equal(t, first, second)
}
