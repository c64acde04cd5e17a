package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"aavm-dashboard/models"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

const (
	scrapeTimeout    = 15 * time.Second
	maxKeptSentences = 40
	scrapeUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Candidate containers for the article body, most specific first.
var articleSelectors = []string{
	"article",
	"[role=article]",
	".article-content",
	".post-content",
	".entry-content",
	".story-body",
	".article-body",
	"main",
}

var (
	journalismRe = regexp.MustCompile(`(?i)\b(said|according|reported|stated|announced|revealed|confirmed|disclosed)\b`)
	quoteRe      = regexp.MustCompile(`"[^"]+"`)
	recencyRe    = regexp.MustCompile(`(?i)\b(today|yesterday|this week|last month|on \w+day)\b`)
	uiTextRe     = regexp.MustCompile(`(?i)\b(click here|read more|subscribe|newsletter|follow us|share this|comments|advertisement)\b`)
	bylineRe     = regexp.MustCompile(`[Bb]y\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	datelineRe   = regexp.MustCompile(`^([A-Z][A-Z.,' ]{2,40}[A-Z.])\s*(?:\([^)]+\))?\s*[—–-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ScraperService fetches an article URL, extracts metadata and body text,
// and classifies the result.
type ScraperService interface {
	Scrape(ctx context.Context, rawURL string) (*models.ScrapeResult, error)
}

type scraperService struct {
	classifier *Classifier
	client     *http.Client
	converter  *md.Converter
}

func NewScraperService(classifier *Classifier) ScraperService {
	return &scraperService{
		classifier: classifier,
		client:     &http.Client{Timeout: scrapeTimeout},
		converter:  md.NewConverter("", true, nil),
	}
}

func (s *scraperService) Scrape(ctx context.Context, rawURL string) (*models.ScrapeResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, models.ValidationError{Field: "url", Message: "a valid http(s) URL is required"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.UpstreamError{Service: "scrape", StatusCode: resp.StatusCode, Message: rawURL}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	hostname := strings.TrimPrefix(parsed.Hostname(), "www.")

	title := extractTitle(doc)
	if title == "" {
		title = "Article from " + hostname
	}
	description := extractDescription(doc)
	author := extractAuthor(doc)

	content := s.extractContent(doc, title)
	wordCount := len(strings.Fields(content))
	quality := assessQuality(content, wordCount)

	classification := s.classifier.Classify(title, description, content, hostname)

	if description == "" {
		description = "No description available"
	}

	return &models.ScrapeResult{
		Title:          title,
		Author:         author,
		Content:        content,
		Description:    description,
		Source:         capitalize(hostname),
		Dateline:       extractDateline(content),
		RelevanceScore: math.Round(classification.RelevanceScore*10) / 10,
		Priority:       classification.Priority,
		Topic:          classification.Topic,
		ContentQuality: quality,
		WordCount:      wordCount,
		Success:        true,
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range []string{
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
	} {
		if v, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	for _, sel := range []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[name="twitter:description"]`,
	} {
		if v, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func extractAuthor(doc *goquery.Document) string {
	for _, sel := range []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
	} {
		if v, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if v := strings.TrimSpace(doc.Find(`span[class*="author"]`).First().Text()); v != "" {
		return v
	}
	if m := bylineRe.FindStringSubmatch(doc.Text()); m != nil {
		return m[1]
	}
	return "N/A"
}

// extractContent picks the largest article container, flattens it to
// text and keeps the sentences most likely to be body copy.
func (s *scraperService) extractContent(doc *goquery.Document, title string) string {
	doc.Find("script, style, nav, header, footer, aside, noscript, form").Remove()

	var best *goquery.Selection
	bestLen := 0
	for _, selector := range articleSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if n := len(sel.Text()); n > bestLen {
				best = sel
				bestLen = n
			}
		})
	}
	if best == nil {
		best = doc.Find("body")
	}

	html, err := goquery.OuterHtml(best)
	if err != nil {
		return ""
	}
	text, err := s.converter.ConvertString(html)
	if err != nil {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")

	return filterSentences(text, title)
}

type scoredSentence struct {
	text  string
	score int
	order int
}

// filterSentences keeps sentences that look like article body copy,
// ranked by overlap with the title and journalism markers.
func filterSentences(text, title string) string {
	titleWords := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) > 2 {
			titleWords[w] = true
		}
	}

	var kept []scoredSentence
	for i, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		sentence := strings.TrimSpace(raw)
		if len(sentence) <= 50 {
			continue
		}

		score := 0
		lower := strings.ToLower(sentence)
		for w := range titleWords {
			if strings.Contains(lower, w) {
				score += 2
			}
		}
		if len(sentence) > 100 {
			score++
		}
		if len(sentence) > 200 {
			score++
		}
		if journalismRe.MatchString(sentence) {
			score += 2
		}
		if quoteRe.MatchString(sentence) {
			score++
		}
		if recencyRe.MatchString(sentence) {
			score++
		}

		if score >= 2 && !uiTextRe.MatchString(sentence) {
			kept = append(kept, scoredSentence{text: sentence, score: score, order: i})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
	if len(kept) > maxKeptSentences {
		kept = kept[:maxKeptSentences]
	}
	// Restore reading order after taking the best-scored sentences.
	sort.Slice(kept, func(i, j int) bool { return kept[i].order < kept[j].order })

	parts := make([]string, len(kept))
	for i, s := range kept {
		parts[i] = s.text
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

func assessQuality(content string, wordCount int) string {
	var quality string
	switch {
	case wordCount >= 400:
		quality = "excellent"
	case wordCount >= 250:
		quality = "good"
	case wordCount >= 150:
		quality = "medium"
	case wordCount >= 75:
		quality = "poor"
	default:
		quality = "insufficient"
	}

	if wordCount >= 150 && (quoteRe.MatchString(content) || journalismRe.MatchString(content)) {
		switch quality {
		case "medium":
			quality = "good"
		case "good":
			quality = "excellent"
		}
	}
	return quality
}

// extractDateline pulls the conventional leading city marker, e.g.
// "WASHINGTON —" or "SAN FRANCISCO (AP) —".
func extractDateline(content string) string {
	if m := datelineRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(strings.TrimSuffix(m[1], ","))
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
