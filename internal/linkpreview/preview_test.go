package linkpreview

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestFirstURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"check out https://example.com/page now", "https://example.com/page"},
		{"http://a.cm and https://b.cm", "http://a.cm"},
		{"no links here", ""},
		{"", ""},
		{"trailing punctuation https://example.com/x?q=1", "https://example.com/x?q=1"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FirstURL(tt.input); got != tt.expected {
				t.Errorf("FirstURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDocument(t *testing.T) {
	html := `<html><head>
		<title>Fallback Title</title>
		<meta property="og:title" content="OG Title">
		<meta property="og:description" content="OG Description">
		<meta property="og:image" content="https://example.com/img.png">
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	p := ParseDocument(doc)
	if p.Title != "OG Title" {
		t.Errorf("title = %q, want OG Title", p.Title)
	}
	if p.Description != "OG Description" {
		t.Errorf("description = %q, want OG Description", p.Description)
	}
	if p.Image != "https://example.com/img.png" {
		t.Errorf("image = %q", p.Image)
	}
}

func TestParseDocumentFallbacks(t *testing.T) {
	html := `<html><head>
		<title> Page Title </title>
		<meta name="description" content="plain description">
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	p := ParseDocument(doc)
	if p.Title != "Page Title" {
		t.Errorf("title = %q, want Page Title", p.Title)
	}
	if p.Description != "plain description" {
		t.Errorf("description = %q, want plain description", p.Description)
	}
	if p.Image != "" {
		t.Errorf("image = %q, want empty", p.Image)
	}
}
