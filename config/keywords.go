package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const keywordConfigEnv = "CLASSIFIER_CONFIG"

// Keywords holds the curated lists driving relevance scoring, priority
// classification and topic labeling. Defaults match the production
// scraper; a YAML file pointed to by CLASSIFIER_CONFIG overrides any
// non-empty list.
type Keywords struct {
	Subject         []string    `yaml:"subject"`
	HighRelevance   []string    `yaml:"highRelevance"`
	MediumRelevance []string    `yaml:"mediumRelevance"`
	Locations       []string    `yaml:"locations"`
	Urgent          []string    `yaml:"urgent"`
	TrustedSources  []string    `yaml:"trustedSources"`
	Topics          []TopicRule `yaml:"topics"`
}

// TopicRule maps keywords to a topic label. Rules are evaluated in order
// and the first match wins.
type TopicRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// LoadKeywords returns the default lists merged with any YAML override.
func LoadKeywords() Keywords {
	kw := defaultKeywords()

	path := os.Getenv(keywordConfigEnv)
	if path == "" {
		return kw
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: cannot read %s: %v (using defaults)", path, err)
		return kw
	}

	var override Keywords
	if err := yaml.Unmarshal(raw, &override); err != nil {
		log.Printf("config: cannot parse %s: %v (using defaults)", path, err)
		return kw
	}

	return mergeKeywords(kw, override)
}

func mergeKeywords(base, override Keywords) Keywords {
	if len(override.Subject) > 0 {
		base.Subject = override.Subject
	}
	if len(override.HighRelevance) > 0 {
		base.HighRelevance = override.HighRelevance
	}
	if len(override.MediumRelevance) > 0 {
		base.MediumRelevance = override.MediumRelevance
	}
	if len(override.Locations) > 0 {
		base.Locations = override.Locations
	}
	if len(override.Urgent) > 0 {
		base.Urgent = override.Urgent
	}
	if len(override.TrustedSources) > 0 {
		base.TrustedSources = override.TrustedSources
	}
	if len(override.Topics) > 0 {
		base.Topics = override.Topics
	}
	return base
}

func defaultKeywords() Keywords {
	return Keywords{
		Subject: []string{
			"asian american", "chinese american", "korean american", "vietnamese american",
			"filipino american", "japanese american", "south asian", "southeast asian",
			"immigration", "medicare", "healthcare", "education", "voting", "election",
			"hate crime", "discrimination", "civil rights", "community center",
			"small business", "chinatown", "koreatown", "language access", "translation",
			"diaspora", "green card", "naturalization", "intergenerational",
			"model minority", "bamboo ceiling", "affirmative action",
		},
		HighRelevance: []string{
			"immigration", "healthcare", "education", "voting", "discrimination", "policy",
		},
		MediumRelevance: []string{
			"economy", "business", "community", "cultural", "federal", "government",
		},
		Locations: []string{
			"california", "new york", "texas", "georgia", "virginia", "washington", "hawaii",
		},
		Urgent: []string{
			"hate crime", "deportation", "detention", "shooting", "emergency",
		},
		TrustedSources: []string{
			"reuters.com", "apnews.com", "bloomberg.com", "wsj.com", "npr.org",
			"nbcnews.com", "usatoday.com", "abcnews.go.com", "cnn.com", "politico.com",
		},
		Topics: []TopicRule{
			{Label: "Education", Keywords: []string{"school", "education", "student", "university", "college"}},
			{Label: "Healthcare", Keywords: []string{"health", "medicare", "insurance", "hospital", "medical"}},
			{Label: "Immigration", Keywords: []string{"immigration", "visa", "citizen", "border"}},
			{Label: "Politics", Keywords: []string{"election", "voting", "politics", "government", "policy"}},
			{Label: "Economy", Keywords: []string{"economy", "job", "employment", "business", "market", "trade"}},
		},
	}
}
