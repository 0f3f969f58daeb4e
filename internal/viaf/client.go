package viaf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"authorlink/internal/authority"
	"authorlink/internal/logging"
	"authorlink/internal/textutil"
)

const (
	// PageSize is the cluster count per search page. The service's SRU
	// endpoint returns at most 10 clusters per request regardless of
	// what maximumRecords asks for.
	PageSize = 10

	// MaxPages bounds a name search. Match quality past the first 500
	// clusters is unlikely to be usable.
	MaxPages = 50

	scopePersonalNames  = "local.personalNames"
	scopeCorporateNames = "local.corporateNames"
)

// Fetcher retrieves URLs, normally through the local document cache.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, bool, error)
	Evict(url string) error
}

// Client reads authority records from a VIAF-style service.
type Client struct {
	baseURL   string
	fetcher   Fetcher
	extractor *authority.Extractor
	logger    *slog.Logger
}

// NewClient constructs a client rooted at baseURL (no trailing slash).
func NewClient(baseURL string, fetcher Fetcher, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		fetcher:   fetcher,
		extractor: authority.NewExtractor(logger),
		logger:    logging.NewComponentLogger(logger, "viaf"),
	}
}

// LookupByID fetches a single authority record and extracts the
// candidate it describes. No ranking or thresholding is applied; the
// caller already knows which identity it wants.
func (c *Client) LookupByID(ctx context.Context, authorityID, knownSortName, knownDisplayName string) (*authority.Triple, error) {
	authorityID = strings.TrimSpace(authorityID)
	if authorityID == "" {
		return nil, errors.New("authority id cannot be empty")
	}

	body, wasCached, err := c.fetcher.Get(ctx, c.recordURL(authorityID))
	if err != nil {
		return nil, fmt.Errorf("lookup authority record %s: %w", authorityID, err)
	}
	c.logger.Debug("fetched authority record",
		logging.String("authority_id", authorityID),
		logging.Bool("cached", wasCached))

	cluster := authority.ParseCluster(body)
	if cluster == nil {
		return nil, fmt.Errorf("authority record %s: unparsable document", authorityID)
	}
	triple := c.extractor.Extract(cluster, knownSortName, knownDisplayName)
	return &triple, nil
}

// LookupNameTitles fetches a single authority record and returns the
// title-like qualifiers attached to its primary name fields.
func (c *Client) LookupNameTitles(ctx context.Context, authorityID string) ([]string, error) {
	authorityID = strings.TrimSpace(authorityID)
	if authorityID == "" {
		return nil, errors.New("authority id cannot be empty")
	}

	body, _, err := c.fetcher.Get(ctx, c.recordURL(authorityID))
	if err != nil {
		return nil, fmt.Errorf("lookup authority record %s: %w", authorityID, err)
	}
	cluster := authority.ParseCluster(body)
	if cluster == nil {
		return nil, fmt.Errorf("authority record %s: unparsable document", authorityID)
	}
	return cluster.NameTitles(), nil
}

// LookupByName searches the service for the named contributor and
// returns the best-scoring candidate, or nil when no candidate clears
// the acceptance threshold.
func (c *Client) LookupByName(ctx context.Context, sortName, displayName string, knownTitles []string) (*authority.Triple, error) {
	ranked, err := c.Search(ctx, sortName, displayName, knownTitles)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 || ranked[0].Evidence.Total < authority.AcceptThreshold {
		c.logger.Debug("no confident match",
			logging.String("sort_name", sortName),
			logging.String("display_name", displayName),
			logging.Int("candidates", len(ranked)))
		return nil, nil
	}
	return ranked[0], nil
}

// Search returns every candidate the service offers for the named
// contributor, weighed and ordered best-first. No acceptance threshold
// is applied.
//
// Pages are read in holdings-count order until one yields no usable
// candidate. That page is evicted from the cache before stopping, so a
// transient empty response cannot poison later searches.
func (c *Client) Search(ctx context.Context, sortName, displayName string, knownTitles []string) ([]*authority.Triple, error) {
	authorName := strings.TrimSpace(sortName)
	if authorName == "" {
		authorName = strings.TrimSpace(displayName)
	}
	if authorName == "" {
		return nil, errors.New("contributor has no name to search for")
	}

	scope := scopePersonalNames
	if textutil.IsCorporateName(authorName) {
		scope = scopeCorporateNames
	}

	var candidates []*authority.Triple
	for page := 1; page <= MaxPages; page++ {
		pageURL := c.searchURL(scope, authorName, page)
		body, wasCached, err := c.fetcher.Get(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("search page %d for %q: %w", page, authorName, err)
		}

		pageCandidates := c.parsePage(body, sortName, displayName, page)
		if len(pageCandidates) == 0 {
			if err := c.fetcher.Evict(pageURL); err != nil {
				c.logger.Warn("failed to evict empty search page",
					logging.String("url", pageURL),
					logging.Error(err))
			}
			break
		}

		c.logger.Debug("parsed search page",
			logging.String("name", authorName),
			logging.Int("page", page),
			logging.Int("candidates", len(pageCandidates)),
			logging.Bool("cached", wasCached))

		candidates = append(candidates, pageCandidates...)
	}

	return authority.Rank(candidates, knownTitles, false), nil
}

// parsePage extracts every cluster on a search page, assigning each
// usable candidate its popularity rank: its position among the page's
// usable candidates, offset by the pages before it. Candidates with
// neither a display name nor an authority identifier are dropped.
func (c *Client) parsePage(body []byte, knownSortName, knownDisplayName string, page int) []*authority.Triple {
	clusters := authority.ParseClusters(body)
	var usable []*authority.Triple
	for _, cluster := range clusters {
		triple := c.extractor.Extract(cluster, knownSortName, knownDisplayName)
		if !triple.Candidate.Usable() {
			continue
		}
		triple.Evidence.LibraryPopularity = len(usable) + 1 + PageSize*(page-1)
		usable = append(usable, &triple)
	}
	return usable
}

func (c *Client) recordURL(authorityID string) string {
	return fmt.Sprintf("%s/viaf/%s/viaf.xml", c.baseURL, url.PathEscape(authorityID))
}

func (c *Client) searchURL(scope, authorName string, page int) string {
	values := url.Values{}
	values.Set("query", fmt.Sprintf("%s all %q", scope, authorName))
	values.Set("sortKeys", "holdingscount")
	values.Set("maximumRecords", strconv.Itoa(PageSize))
	values.Set("startRecord", strconv.Itoa(1+PageSize*(page-1)))
	values.Set("httpAccept", "text/xml")
	return c.baseURL + "/viaf/search?" + values.Encode()
}
