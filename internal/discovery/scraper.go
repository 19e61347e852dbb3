package discovery

import (
	"context"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/shadowgoose/grantpulse/internal/models"
)

// GrantSink receives discovered grants. The db store satisfies this.
type GrantSink interface {
	InsertGrant(ctx context.Context, g models.GrantRecord) (id string, inserted bool, err error)
}

// Stats summarizes one discovery run.
type Stats struct {
	Found  int `json:"found"`
	Saved  int `json:"saved"`
	Errors int `json:"errors"`
}

var descriptionPolicy = bluemonday.UGCPolicy()

// Scraper walks the registry's enabled sources and feeds discovered grants
// into the sink. Each run builds fresh collectors so sources cannot leak
// callbacks into one another.
type Scraper struct {
	registry *Registry
	sink     GrantSink

	UserAgent      string
	RequestTimeout time.Duration
	DomainDelay    time.Duration
}

func NewScraper(registry *Registry, sink GrantSink) *Scraper {
	return &Scraper{
		registry:       registry,
		sink:           sink,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		RequestTimeout: 30 * time.Second,
		DomainDelay:    time.Second,
	}
}

// Run scrapes every enabled source and returns aggregate stats. Individual
// source failures are logged and counted, never fatal for the run.
func (s *Scraper) Run(ctx context.Context) Stats {
	var total Stats
	for _, src := range s.registry.Sources {
		if !src.Enabled {
			continue
		}
		stats := s.runSource(ctx, src)
		log.Printf("Discovery source %s: found=%d saved=%d errors=%d", src.ID, stats.Found, stats.Saved, stats.Errors)
		total.Found += stats.Found
		total.Saved += stats.Saved
		total.Errors += stats.Errors
	}
	return total
}

func (s *Scraper) runSource(ctx context.Context, src SourceConfig) Stats {
	var stats Stats
	var mu sync.Mutex
	seen := make(map[string]bool)

	c := s.buildCollector(src)

	c.OnHTML(src.Selectors.Container, func(e *colly.HTMLElement) {
		grant, ok := s.extractGrant(e, src)
		if !ok {
			return
		}

		mu.Lock()
		key := strings.ToLower(grant.Name)
		if seen[key] {
			mu.Unlock()
			return
		}
		seen[key] = true
		stats.Found++
		mu.Unlock()

		if guidelineURL := e.ChildAttr(src.Selectors.Guideline, "href"); guidelineURL != "" && grant.DueDate == "" {
			if due, ok := deadlineFromPDF(ctx, e.Request.AbsoluteURL(guidelineURL)); ok {
				grant.DueDate = due
			}
		}

		_, inserted, err := s.sink.InsertGrant(ctx, grant)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Printf("Discovery: failed to save grant %q from %s: %v", grant.Name, src.ID, err)
			stats.Errors++
			return
		}
		if inserted {
			stats.Saved++
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("Discovery: fetch error for %s: %v", r.Request.URL, err)
		mu.Lock()
		stats.Errors++
		mu.Unlock()
	})

	for _, seed := range src.Seeds {
		if ctx.Err() != nil {
			break
		}
		if err := c.Visit(seed); err != nil {
			log.Printf("Discovery: visit failed for %s: %v", seed, err)
			mu.Lock()
			stats.Errors++
			mu.Unlock()
		}
	}
	c.Wait()

	return stats
}

func (s *Scraper) buildCollector(src SourceConfig) *colly.Collector {
	opts := []colly.CollectorOption{
		colly.UserAgent(s.UserAgent),
		colly.DetectCharset(),
	}
	if src.MaxPages > 0 {
		opts = append(opts, colly.MaxDepth(src.MaxPages))
	}

	var domains []string
	for _, seed := range src.Seeds {
		if u, err := url.Parse(seed); err == nil && u.Host != "" {
			domains = append(domains, u.Host)
		}
	}
	if len(domains) > 0 {
		opts = append(opts, colly.AllowedDomains(domains...))
	}

	c := colly.NewCollector(opts...)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       s.DomainDelay,
		RandomDelay: s.DomainDelay / 2,
	})
	c.SetRequestTimeout(s.RequestTimeout)

	return c
}

func (s *Scraper) extractGrant(e *colly.HTMLElement, src SourceConfig) (models.GrantRecord, bool) {
	var name string
	if src.Selectors.Title != "" {
		name = strings.TrimSpace(e.ChildText(src.Selectors.Title))
	} else {
		name = strings.TrimSpace(e.Text)
	}
	if name == "" {
		return models.GrantRecord{}, false
	}

	description := ""
	if src.Selectors.Description != "" {
		if raw, err := e.DOM.Find(src.Selectors.Description).Html(); err == nil {
			description = strings.TrimSpace(descriptionPolicy.Sanitize(raw))
		}
	}

	return models.GrantRecord{
		Name:         name,
		Funder:       src.Name,
		Description:  description,
		AmountString: strings.TrimSpace(e.ChildText(src.Selectors.Amount)),
		DueDate:      strings.TrimSpace(e.ChildText(src.Selectors.Deadline)),
		Status:       models.StatusPotential,
		Source:       src.ID,
	}, true
}
