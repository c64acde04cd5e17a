package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"aavm-dashboard/config"
	"aavm-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArticleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Fallback Title</title>
  <meta property="og:title" content="City Expands Language Access Program">
  <meta name="description" content="The program adds Chinese and Korean interpreter services citywide.">
  <meta name="author" content="Jane Doe">
</head>
<body>
  <nav>Subscribe to our newsletter and click here for more</nav>
  <article>
    <p>WASHINGTON — The city said on Tuesday it will expand its language access program to every public-facing office.</p>
    <p>Officials reported that the expanded program adds Chinese and Korean interpreters at every service counter, according to the mayor's office.</p>
    <p>"This program changes how our residents reach city services," the mayor said during a briefing at city hall on Tuesday morning.</p>
    <p>Community groups stated that the language access expansion follows years of advocacy from neighborhood organizations across the city.</p>
    <p>The program will be funded through the general budget, and officials said additional interpreter positions will be posted this week.</p>
    <p>City staff confirmed that printed materials in both languages will be available at libraries, clinics and community centers this fall.</p>
  </article>
  <footer>Share this article</footer>
</body>
</html>`

func TestScrapeExtractsArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testArticleHTML))
	}))
	defer server.Close()

	svc := NewScraperService(NewClassifier(config.LoadKeywords()))

	result, err := svc.Scrape(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "City Expands Language Access Program", result.Title)
	assert.Equal(t, "Jane Doe", result.Author)
	assert.Equal(t, "The program adds Chinese and Korean interpreter services citywide.", result.Description)
	assert.Equal(t, "WASHINGTON", result.Dateline)
	assert.NotEmpty(t, result.Source)
	assert.Greater(t, result.WordCount, 50)
	assert.NotContains(t, result.Content, "Subscribe to our newsletter")
	assert.GreaterOrEqual(t, result.RelevanceScore, 1.0)
	assert.LessOrEqual(t, result.RelevanceScore, 10.0)
	assert.NotEmpty(t, result.Priority)
	assert.NotEmpty(t, result.Topic)
	assert.NotEmpty(t, result.ContentQuality)
}

func TestScrapeRejectsInvalidURL(t *testing.T) {
	svc := NewScraperService(NewClassifier(config.LoadKeywords()))

	for _, raw := range []string{"", "notaurl", "ftp://example.com/file"} {
		_, err := svc.Scrape(context.Background(), raw)
		var verr models.ValidationError
		require.ErrorAs(t, err, &verr, "url %q", raw)
		assert.Equal(t, "url", verr.Field)
	}
}

func TestScrapeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewScraperService(NewClassifier(config.LoadKeywords()))

	_, err := svc.Scrape(context.Background(), server.URL)
	var uerr models.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "scrape", uerr.Service)
	assert.Equal(t, http.StatusNotFound, uerr.StatusCode)
}

func TestFilterSentencesDropsUIText(t *testing.T) {
	text := "Click here to subscribe to our newsletter and get daily updates delivered. " +
		"The council said the new housing policy will take effect in January after a long public comment period."
	got := filterSentences(text, "Housing policy takes effect")

	assert.Contains(t, got, "housing policy")
	assert.NotContains(t, got, "newsletter")
}

func TestAssessQuality(t *testing.T) {
	cases := []struct {
		words int
		want  string
	}{
		{500, "excellent"},
		{300, "good"},
		{180, "medium"},
		{100, "poor"},
		{20, "insufficient"},
	}
	for _, c := range cases {
		content := ""
		for i := 0; i < c.words; i++ {
			content += "word "
		}
		assert.Equal(t, c.want, assessQuality(content, c.words), "%d words", c.words)
	}
}

func TestAssessQualityUpgradesJournalisticText(t *testing.T) {
	content := ""
	for i := 0; i < 180; i++ {
		content += "word "
	}
	content += `"We are ready," the director said.`
	assert.Equal(t, "good", assessQuality(content, 186))
}

func TestExtractDateline(t *testing.T) {
	assert.Equal(t, "WASHINGTON", extractDateline("WASHINGTON — The bill passed."))
	assert.Equal(t, "SAN FRANCISCO", extractDateline("SAN FRANCISCO (AP) — Officials said."))
	assert.Empty(t, extractDateline("The bill passed without a dateline."))
}
