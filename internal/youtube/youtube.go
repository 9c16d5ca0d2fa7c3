// Package youtube is a thin client for the YouTube Data API v3 search and
// videos endpoints.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	fetchTimeout   = 30 * time.Second
	pageSize       = 50 // API maximum for both search and videos.list
)

// Video is the metadata the API returns for one video.
type Video struct {
	VideoID     string
	Title       string
	Description string
	Channel     string
	URL         string
	PublishedAt string
	ViewCount   int64
	LikeCount   int64
	Tags        []string
}

// Client queries the YouTube Data API.
type Client struct {
	apiKey   string
	region   string
	language string
	baseURL  string
	client   *http.Client
}

// New creates a YouTube client. Region and language are optional search
// filters (ISO 3166-1 alpha-2 / BCP-47) and may be empty.
func New(apiKey, region, language string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("youtube: api key is required")
	}
	return &Client{
		apiKey:   apiKey,
		region:   region,
		language: language,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: fetchTimeout},
	}, nil
}

// Search returns up to maxResults video IDs matching the query, following
// pagination as needed.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}
	if maxResults <= 0 {
		return nil, nil
	}

	var ids []string
	pageToken := ""

	for len(ids) < maxResults {
		params := url.Values{}
		params.Set("key", c.apiKey)
		params.Set("part", "id")
		params.Set("q", query)
		params.Set("type", "video")
		params.Set("maxResults", strconv.Itoa(min(pageSize, maxResults-len(ids))))
		if c.region != "" {
			params.Set("regionCode", c.region)
		}
		if c.language != "" {
			params.Set("relevanceLanguage", c.language)
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page searchResponse
		if err := c.get(ctx, "/search", params, &page); err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}

		for _, item := range page.Items {
			if item.ID.VideoID == "" {
				continue
			}
			ids = append(ids, item.ID.VideoID)
			if len(ids) >= maxResults {
				break
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return ids, nil
}

// Details fetches snippet and statistics for the given video IDs, batching
// requests at the API limit of 50 IDs per call.
func (c *Client) Details(ctx context.Context, ids []string) ([]Video, error) {
	var videos []Video

	for start := 0; start < len(ids); start += pageSize {
		end := min(start+pageSize, len(ids))
		batch := ids[start:end]

		params := url.Values{}
		params.Set("key", c.apiKey)
		params.Set("part", "snippet,statistics")
		params.Set("id", strings.Join(batch, ","))

		var page videosResponse
		if err := c.get(ctx, "/videos", params, &page); err != nil {
			return nil, fmt.Errorf("video details: %w", err)
		}

		for _, item := range page.Items {
			videos = append(videos, Video{
				VideoID:     item.ID,
				Title:       item.Snippet.Title,
				Description: item.Snippet.Description,
				Channel:     item.Snippet.ChannelTitle,
				URL:         "https://www.youtube.com/watch?v=" + item.ID,
				PublishedAt: item.Snippet.PublishedAt,
				ViewCount:   parseCount(item.Statistics.ViewCount),
				LikeCount:   parseCount(item.Statistics.LikeCount),
				Tags:        item.Snippet.Tags,
			})
		}
	}

	return videos, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// parseCount handles the API's string-encoded statistics, defaulting to 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			ChannelTitle string   `json:"channelTitle"`
			PublishedAt  string   `json:"publishedAt"`
			Tags         []string `json:"tags"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}
