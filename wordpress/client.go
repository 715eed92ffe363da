package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when a slug or id has no matching record.
var ErrNotFound = errors.New("wordpress: not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Status int
	URL    string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wordpress error %d on %s: %s", e.Status, e.URL, e.Body)
}

const (
	pagesPath      = "/wp-json/wp/v2/pages"
	propertiesPath = "/wp-json/wp/v2/biens"
	mediaPath      = "/wp-json/wp/v2/media"
	acfPath        = "/wp-json/acf/v3/biens/"
	customPagePath = "/wp-json/agence/v1/page/"
	acfEntriesPath = "/wp-json/agence/v1/biens"

	// PageSize is the per_page value used for every collection call.
	PageSize = 100
)

type Client struct {
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

type Option func(*Client)

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.HTTPClient.Timeout = d }
}

// WithRetryMax sets how many times a failed call is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// WithRateLimit bounds the request rate towards the CMS.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
		c.http.Logger = l
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	// hand the last response back so 5xx bodies end up in StatusError
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
		limiter: rate.NewLimiter(rate.Limit(20), 10),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// HTTPClient exposes the underlying client, mostly so tests can swap its transport.
func (c *Client) HTTPClient() *http.Client { return c.http.HTTPClient }

// ListPages returns one page of the standard pages collection and the total page count.
func (c *Client) ListPages(ctx context.Context, page int) ([]Page, int, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("_embed", "1")
	var out []Page
	h, err := c.getJSON(ctx, pagesPath, q, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, totalPages(h), nil
}

// PageBySlug looks a standard page up by slug.
func (c *Client) PageBySlug(ctx context.Context, slug string) (*Page, error) {
	q := url.Values{}
	q.Set("slug", slug)
	q.Set("_embed", "1")
	var out []Page
	if _, err := c.getJSON(ctx, pagesPath, q, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

// CustomPage fetches a page from the agency plugin endpoint.
func (c *Client) CustomPage(ctx context.Context, slug string) (*CustomPage, error) {
	var out CustomPage
	if _, err := c.getJSON(ctx, customPagePath+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProperties returns one page of the "biens" collection with featured
// media and attachments embedded.
func (c *Client) ListProperties(ctx context.Context, page int) ([]Post, int, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("page", strconv.Itoa(max(page, 1)))
	q.Set("_embed", "wp:featuredmedia,wp:attachment")
	var out []Post
	h, err := c.getJSON(ctx, propertiesPath, q, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, totalPages(h), nil
}

// PropertyACF fetches the ACF fields of a single property.
func (c *Client) PropertyACF(ctx context.Context, id int) (Fields, error) {
	var out acfResponse
	if _, err := c.getJSON(ctx, acfPath+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return out.ACF, nil
}

// Attachments lists the media attached to a property.
func (c *Client) Attachments(ctx context.Context, parentID int) ([]Media, error) {
	q := url.Values{}
	q.Set("parent", strconv.Itoa(parentID))
	q.Set("per_page", strconv.Itoa(PageSize))
	var out []Media
	if _, err := c.getJSON(ctx, mediaPath, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ACFEntries lists the properties exposed by the ACF REST wrapper.
func (c *Client) ACFEntries(ctx context.Context) ([]Fields, error) {
	var out []Fields
	if _, err := c.getJSON(ctx, acfEntriesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) (http.Header, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		b, _ := ioReadAllLimit(resp.Body, 2048)
		return nil, &StatusError{Status: resp.StatusCode, URL: u, Body: string(b)}
	}
	b, err := ioReadAllLimit(resp.Body, 8<<20)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	c.log.Debug("wordpress request", slog.String("url", u), slog.Int("bytes", len(b)))
	return resp.Header, nil
}

func totalPages(h http.Header) int {
	n, err := strconv.Atoi(h.Get("X-WP-TotalPages"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return b[:limit], errors.New("payload too large")
	}
	return b, nil
}
