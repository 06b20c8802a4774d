package fetch

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// europePMCSearch resolves publication identifiers (PMID, PMCID, DOI) to a
// fetchable abstract page.
const europePMCSearch = "https://www.ebi.ac.uk/europepmc/webservices/rest/search?format=json&query="

var (
	pmidRe  = regexp.MustCompile(`^[1-9][0-9]*$`)
	pmcidRe = regexp.MustCompile(`^PMC[1-9][0-9]*$`)
	doiRe   = regexp.MustCompile(`^10\.\d{4,}/\S+$`)
)

// HTTP fetches refs over the network and extracts visible text from HTML
// responses. Non-HTML responses are returned as-is when they look textual.
type HTTP struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// Options configures an HTTP fetcher.
type Options struct {
	Timeout   time.Duration // per-request; default 10s
	MaxBytes  int64         // response body cap; default 2 MiB
	UserAgent string
}

// NewHTTP creates an HTTP fetcher.
func NewHTTP(opts Options) *HTTP {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 2 << 20
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "edammap/1.0"
	}
	return &HTTP{
		client:    &http.Client{Timeout: opts.Timeout},
		maxBytes:  opts.MaxBytes,
		userAgent: opts.UserAgent,
	}
}

// Fetch resolves a URL or publication identifier. Any failure (bad URL,
// network error, non-2xx status, unusable content type) reports absent.
func (h *HTTP) Fetch(ctx context.Context, ref string) (string, bool) {
	url := resolveRef(ref)
	if url == "" {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes))
	if err != nil {
		return "", false
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "html"):
		text := ExtractText(body)
		return text, text != ""
	case strings.Contains(contentType, "text"), strings.Contains(contentType, "json"):
		text := strings.TrimSpace(string(body))
		return text, text != ""
	default:
		return "", false
	}
}

// resolveRef turns a publication identifier into a fetchable URL, or
// passes URLs through unchanged.
func resolveRef(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case pmidRe.MatchString(ref):
		return europePMCSearch + "EXT_ID:" + ref
	case pmcidRe.MatchString(ref):
		return europePMCSearch + "PMCID:" + ref
	case doiRe.MatchString(ref):
		return "https://doi.org/" + ref
	default:
		return ""
	}
}

// ExtractText returns the visible text of an HTML document, with script
// and style content removed and whitespace collapsed.
func ExtractText(data []byte) string {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
