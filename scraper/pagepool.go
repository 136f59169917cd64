package scraper

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
	viewportWidth    = 1920
	viewportHeight   = 1080
)

// PooledPage is one long-lived browser tab, owned by the pool and
// keyed by logical identity. The page is a single mutable document, so
// operations against the same key must hold the mutex across the whole
// navigate-and-extract sequence.
type PooledPage struct {
	Key  string
	Page playwright.Page

	mu       sync.Mutex
	lastUsed time.Time
}

func (p *PooledPage) Lock()   { p.mu.Lock() }
func (p *PooledPage) Unlock() { p.mu.Unlock() }

func (p *PooledPage) touch() { p.lastUsed = time.Now() }

// PagePool owns the single browser process and the tab-per-key map.
// The browser launches lazily on first acquire. Pages are reused per
// key and closed only by the idle sweep.
type PagePool struct {
	headless  bool
	idleAfter time.Duration

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	pages   map[string]*PooledPage

	// newPage is swapped out in tests to avoid launching a browser.
	newPage func() (playwright.Page, error)
}

func NewPagePool(headless bool, idleAfter time.Duration) *PagePool {
	return &PagePool{
		headless:  headless,
		idleAfter: idleAfter,
		pages:     make(map[string]*PooledPage),
	}
}

// Acquire returns the page for a logical key, creating browser and page
// on first use. The key is purpose alone, or "purpose-sessionID" when a
// session identity partitions pages between users.
func (p *PagePool) Acquire(purpose, sessionID string) (*PooledPage, error) {
	key := purpose
	if sessionID != "" {
		key = purpose + "-" + sessionID
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if pg, ok := p.pages[key]; ok {
		pg.touch()
		return pg, nil
	}

	opener := p.newPage
	if opener == nil {
		if err := p.ensureBrowser(); err != nil {
			return nil, err
		}
		opener = p.createPage
	}

	page, err := opener()
	if err != nil {
		return nil, fmt.Errorf("create page for %s: %w", key, err)
	}

	pg := &PooledPage{Key: key, Page: page, lastUsed: time.Now()}
	p.pages[key] = pg
	log.Printf("Page pool: created page %s (%d total)", key, len(p.pages))
	return pg, nil
}

// ensureBrowser launches playwright and chromium once. Caller holds p.mu.
func (p *PagePool) ensureBrowser() error {
	if p.browser != nil {
		return nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(p.headless),
		Args:     []string{"--no-sandbox"},
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("launch browser: %w", err)
	}

	p.pw = pw
	p.browser = browser
	log.Println("Browser launched")
	return nil
}

func (p *PagePool) createPage() (playwright.Page, error) {
	return p.browser.NewPage(playwright.BrowserNewPageOptions{
		UserAgent: playwright.String(desktopUserAgent),
		Viewport:  &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	})
}

// Sweep closes pages idle longer than the configured threshold and
// returns how many were evicted. Pages currently locked by an in-flight
// operation are skipped.
func (p *PagePool) Sweep() int {
	if p.idleAfter <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	evicted := 0
	for key, pg := range p.pages {
		if time.Since(pg.lastUsed) < p.idleAfter {
			continue
		}
		if !pg.mu.TryLock() {
			continue
		}
		if pg.Page != nil {
			pg.Page.Close()
		}
		pg.mu.Unlock()
		delete(p.pages, key)
		evicted++
		log.Printf("Page pool: evicted idle page %s", key)
	}
	return evicted
}

// RunEvictor sweeps periodically until the context ends.
func (p *PagePool) RunEvictor(ctx context.Context) {
	if p.idleAfter <= 0 {
		return
	}

	interval := p.idleAfter / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Len reports how many pages the pool currently holds.
func (p *PagePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages)
}

// Close tears down all pages and the browser process.
func (p *PagePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, pg := range p.pages {
		if pg.Page != nil {
			pg.Page.Close()
		}
		delete(p.pages, key)
	}
	if p.browser != nil {
		p.browser.Close()
		p.browser = nil
	}
	if p.pw != nil {
		p.pw.Stop()
		p.pw = nil
	}
}
