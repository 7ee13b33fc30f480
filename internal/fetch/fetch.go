// Package fetch is the discovery/download collaborator: it resolves the
// publisher's workbook URLs and hands fully downloaded (name, bytes) pairs to
// the compiler. The pipeline core performs no network I/O of its own.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"aihwetl/internal/config"
	"aihwetl/pkg/contracts/domain"
)

// workbookLinkRe matches the href of the reasons-for-care workbook on the
// AIHW landing page. Publisher-specific: if AIHW renames the file the
// discovery step stops matching and the configured fallback URLs take over.
var workbookLinkRe = regexp.MustCompile(`href="([^"]*tables-reasons-for-care[^"]*\.xlsx)"`)

// Client downloads workbook sources with a bounded per-request timeout and
// no retries: a transient failure aborts the run.
type Client struct {
	http   *http.Client
	cfg    config.FetchConfig
	logger *slog.Logger
}

// NewClient builds a fetch client from configuration. A nil logger falls
// back to slog.Default().
func NewClient(cfg config.FetchConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// Sources resolves and downloads every workbook for one run. Explicitly
// configured source URLs win; otherwise the landing page is scraped for the
// latest workbook link. Any retrieval failure is propagated unmodified.
func (c *Client) Sources(ctx context.Context) ([]domain.WorkbookSource, error) {
	urls := c.cfg.SourceURLs
	if len(urls) == 0 {
		discovered, err := c.DiscoverLatest(ctx)
		if err != nil {
			return nil, err
		}
		urls = []string{discovered}
	}

	sources := make([]domain.WorkbookSource, 0, len(urls))
	for _, u := range urls {
		src, err := c.Download(ctx, u)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// DiscoverLatest scrapes the landing page and returns the absolute URL of
// the first workbook link found.
func (c *Client) DiscoverLatest(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.cfg.PageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch landing page: %w", err)
	}

	m := workbookLinkRe.FindStringSubmatch(string(body))
	if m == nil {
		return "", fmt.Errorf("no workbook link found on landing page %s", c.cfg.PageURL)
	}

	link := m[1]
	if strings.HasPrefix(link, "/") {
		link = strings.TrimRight(c.cfg.BaseURL, "/") + link
	}
	c.logger.Info("discovered workbook link", slog.String("url", link))
	return link, nil
}

// Download retrieves one workbook fully into memory. The source name is the
// final path segment of the URL, which carries the publication year the
// compiler extracts.
func (c *Client) Download(ctx context.Context, rawURL string) (domain.WorkbookSource, error) {
	c.logger.Info("downloading workbook", slog.String("url", rawURL))

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return domain.WorkbookSource{}, fmt.Errorf("failed to download workbook %s: %w", rawURL, err)
	}

	return domain.WorkbookSource{Name: sourceName(rawURL), Content: body}, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, rawURL)
	}
	return io.ReadAll(resp.Body)
}

// sourceName extracts the identifying file name from a workbook URL, falling
// back to the raw URL when it does not parse.
func sourceName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	segments := strings.Split(strings.TrimRight(u.Path, "/"), "/")
	if name := segments[len(segments)-1]; name != "" {
		return name
	}
	return rawURL
}
