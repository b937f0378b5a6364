package linkpreview

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobive/backend/internal/models"
	"go.uber.org/zap"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// FirstURL extracts the first http(s) link from free text, or "".
func FirstURL(text string) string {
	return urlPattern.FindString(text)
}

// Fetcher resolves a URL into an Open Graph preview. Fetching is best-effort;
// posts render fine without a preview.
type Fetcher struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewFetcher(timeout time.Duration, maxRetries int, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		maxRetries: maxRetries,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.LinkPreview, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; JobivePreview/1.0)")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, lastErr
	}

	preview := ParseDocument(doc)
	preview.URL = url
	return preview, nil
}

// ParseDocument pulls og: meta tags out of a parsed page, falling back to
// <title> and the description meta tag.
func ParseDocument(doc *goquery.Document) *models.LinkPreview {
	preview := &models.LinkPreview{}

	preview.Title = metaContent(doc, "og:title")
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	preview.Description = metaContent(doc, "og:description")
	if preview.Description == "" {
		doc.Find(`meta[name="description"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			preview.Description, _ = s.Attr("content")
			return false
		})
	}

	preview.Image = metaContent(doc, "og:image")

	return preview
}

func metaContent(doc *goquery.Document, property string) string {
	var content string
	doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content, _ = s.Attr("content")
		return false
	})
	return strings.TrimSpace(content)
}
