package services

import (
	"strings"

	"aavm-dashboard/config"
)

const (
	baseScore            = 2.0
	communityIncrement   = 4.0
	subjectIncrement     = 2.0
	highTopicIncrement   = 1.5
	mediumTopicIncrement = 0.8
	locationIncrement    = 0.3
	trustedSourceBonus   = 1.0
	newsValueBonus       = 1.0

	minScore = 1.0
	maxScore = 10.0

	highPriorityThreshold   = 8.0
	mediumPriorityThreshold = 6.0
)

// Classification is the deterministic output of the relevance classifier.
type Classification struct {
	RelevanceScore float64 `json:"relevanceScore"`
	Priority       string  `json:"priority"`
	Topic          string  `json:"topic"`
}

// Classifier scores scraped text for community relevance. Same input
// always yields the same output; topic rules are evaluated in order and
// the first match wins.
type Classifier struct {
	keywords config.Keywords
}

func NewClassifier(keywords config.Keywords) *Classifier {
	return &Classifier{keywords: keywords}
}

func (c *Classifier) Classify(title, description, content, hostname string) Classification {
	text := strings.ToLower(title + " " + description)

	score := baseScore

	for _, keyword := range c.keywords.Subject {
		if strings.Contains(text, keyword) {
			if strings.Contains(keyword, "asian american") {
				score += communityIncrement
			} else {
				score += subjectIncrement
			}
		}
	}

	for _, topic := range c.keywords.HighRelevance {
		if strings.Contains(text, topic) {
			score += highTopicIncrement
		}
	}
	for _, topic := range c.keywords.MediumRelevance {
		if strings.Contains(text, topic) {
			score += mediumTopicIncrement
		}
	}
	for _, location := range c.keywords.Locations {
		if strings.Contains(text, location) {
			score += locationIncrement
		}
	}

	if c.trustedSource(hostname) {
		score += trustedSourceBonus
	}

	score += newsValueBonus
	score = clamp(score, minScore, maxScore)

	return Classification{
		RelevanceScore: score,
		Priority:       c.priority(score, text, content),
		Topic:          c.topic(text),
	}
}

func (c *Classifier) priority(score float64, text, content string) string {
	urgentText := text + " " + strings.ToLower(content)
	for _, keyword := range c.keywords.Urgent {
		if strings.Contains(urgentText, keyword) {
			return "high"
		}
	}
	switch {
	case score >= highPriorityThreshold:
		return "high"
	case score >= mediumPriorityThreshold:
		return "medium"
	}
	return "low"
}

func (c *Classifier) topic(text string) string {
	for _, rule := range c.keywords.Topics {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Label
			}
		}
	}
	return "General"
}

func (c *Classifier) trustedSource(hostname string) bool {
	hostname = strings.TrimPrefix(strings.ToLower(hostname), "www.")
	for _, source := range c.keywords.TrustedSources {
		if hostname == source {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
