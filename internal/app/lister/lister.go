package lister

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/errs"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
)

const (
	redditBaseURL = "https://www.reddit.com"

	// pageSize is the hard per-request cap of the listing endpoint.
	pageSize = 100

	maxRetries = 3
)

// Client lists a user's submissions through the public JSON listing
// endpoint, newest first, following the pagination cursor until the
// requested number of submissions is collected.
type Client struct {
	client     *http.Client
	userAgent  string
	baseURL    string
	newBackoff func() backoff.BackOff
}

func CreateClient(client *http.Client, userAgent string) *Client {
	return &Client{
		client:    client,
		userAgent: userAgent,
		baseURL:   redditBaseURL,
		newBackoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
		},
	}
}

type listingPage struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data submissionData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type submissionData struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	CreatedUTC    float64 `json:"created_utc"`
	IsGallery     bool    `json:"is_gallery"`
	MediaMetadata map[string]struct {
		S struct {
			U   string `json:"u"`
			GIF string `json:"gif"`
		} `json:"s"`
	} `json:"media_metadata"`
}

// ListSubmissions fetches up to limit of the user's newest submissions.
// Rate limits and server errors are retried with exponential backoff before
// surfacing; an unknown or suspended user surfaces immediately.
func (c *Client) ListSubmissions(ctx context.Context, username string, limit int) ([]models.Submission, error) {
	const funcName = "Client.ListSubmissions"

	submissions := make([]models.Submission, 0, limit)
	after := ""

	for len(submissions) < limit {
		count := limit - len(submissions)
		if count > pageSize {
			count = pageSize
		}

		page, err := c.fetchPageWithRetry(ctx, username, after, count)
		if err != nil {
			logger.Error("listing failed",
				zap.String("function", funcName),
				zap.String("username", username),
				zap.Error(err))
			return nil, err
		}

		for _, child := range page.Data.Children {
			if len(submissions) == limit {
				break
			}
			submissions = append(submissions, toSubmission(child.Data))
		}

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}
		after = page.Data.After
	}

	logger.Info("listed submissions",
		zap.String("function", funcName),
		zap.String("username", username),
		zap.Int("count", len(submissions)))
	return submissions, nil
}

func (c *Client) fetchPageWithRetry(ctx context.Context, username, after string, count int) (*listingPage, error) {
	operation := func() (*listingPage, error) {
		return c.fetchPage(ctx, username, after, count)
	}
	return backoff.RetryWithData(operation, backoff.WithContext(c.newBackoff(), ctx))
}

// fetchPage retrieves one listing page. Errors that retrying cannot fix are
// wrapped as permanent so the backoff loop stops immediately.
func (c *Client) fetchPage(ctx context.Context, username, after string, count int) (*listingPage, error) {
	endpoint := fmt.Sprintf("%s/user/%s/submitted.json", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}

	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(count))
	q.Set("sort", "new")
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusForbidden:
		return nil, backoff.Permanent(fmt.Errorf("%w: u/%s", errs.ErrUserNotFound, username))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: listing u/%s", errs.ErrRateLimited, username)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("list submissions: unexpected status %s", resp.Status)
	default:
		return nil, backoff.Permanent(fmt.Errorf("list submissions: unexpected status %s", resp.Status))
	}

	var page listingPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode listing: %w", err))
	}
	return &page, nil
}

// toSubmission flattens one listing child. Gallery URLs are ordered by their
// metadata key so repeated listings number gallery items identically.
func toSubmission(data submissionData) models.Submission {
	sub := models.Submission{
		ID:        data.ID,
		Title:     data.Title,
		URL:       data.URL,
		Created:   time.Unix(int64(data.CreatedUTC), 0).UTC(),
		IsGallery: data.IsGallery,
	}
	if !data.IsGallery || len(data.MediaMetadata) == 0 {
		return sub
	}

	keys := make([]string, 0, len(data.MediaMetadata))
	for key := range data.MediaMetadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item := data.MediaMetadata[key]
		url := item.S.U
		if url == "" {
			url = item.S.GIF
		}
		if url != "" {
			sub.MediaURLs = append(sub.MediaURLs, url)
		}
	}
	return sub
}
