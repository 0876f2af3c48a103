package rss

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/geomanifold/manifold/pkg/custom_cache"
	"github.com/geomanifold/manifold/pkg/helpers"
	"github.com/geomanifold/manifold/pkg/metrics"
	"github.com/mmcdole/gofeed"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	fp     = gofeed.NewParser()
	client = &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 2 {
				return errors.New("stopped after 2 redirects")
			}
			return nil
		},
		Timeout: 5 * time.Second,
	}
)

var types = []string{
	"rss+xml",
	"atom+xml",
	"feed+json",
	"text/xml",
	"application/xml",
}

// GetFeedURL resolves a configured URL to the feed document it serves. A URL
// already answering with a feed content type is returned as is; an HTML page
// is scraped for its alternate feed link. Returns "" when nothing is found.
func GetFeedURL(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return ""
	}

	resp, err := client.Do(req)
	if err != nil || resp.StatusCode >= 300 {
		return ""
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	for _, typ := range types {
		if strings.Contains(ct, typ) {
			return url
		}
	}

	if strings.Contains(ct, "text/html") {
		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return ""
		}

		for _, typ := range types {
			href, _ := doc.Find(fmt.Sprintf("link[type*='%s']", typ)).Attr("href")
			if href == "" {
				continue
			}
			if !strings.HasPrefix(href, "http") && !strings.HasPrefix(href, "https") {
				href, _ = helpers.UrlJoin(url, href)
			}
			return href
		}
	}

	return ""
}

type Parser struct {
	downloader *Downloader
}

func NewParser(downloader *Downloader) *Parser {
	return &Parser{downloader: downloader}
}

// ParseFeed downloads and parses the feed document, caching the parsed form
// so frequent refresh runs do not hammer the origin.
func (p *Parser) ParseFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	feedString, err := custom_cache.Get(url)
	if err == nil {
		metrics.CacheHits.Inc()

		var feed gofeed.Feed
		err := json.Unmarshal([]byte(feedString), &feed)
		if err != nil {
			log.Printf("[ERROR] failure to parse cache stored feed: %v", err)
			metrics.AppErrors.With(prometheus.Labels{"type": "CACHE_PARSE"}).Inc()
		} else {
			return &feed, nil
		}
	} else {
		log.Printf("[DEBUG] entry not found in cache: %v", err)
	}

	metrics.CacheMiss.Inc()

	body, err := p.downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := fp.Parse(body)
	if err != nil {
		return nil, err
	}

	marshal, err := json.Marshal(feed)
	if err == nil {
		err = custom_cache.Set(url, string(marshal))
	}

	if err != nil {
		log.Printf("[ERROR] failure to store into cache feed: %v", err)
		metrics.AppErrors.With(prometheus.Labels{"type": "CACHE_SET"}).Inc()
	}

	return feed, nil
}
