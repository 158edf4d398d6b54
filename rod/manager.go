package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// replaced.
const DefaultMaxPages = 75

// instance is one launched browser and the pages currently using it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	active   int
	retired  bool
}

func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: b, launcher: l}, nil
}

func (in *instance) close() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// BrowserManager hands out a shared headless Chrome and replaces it after
// maxPages pages, since Chrome's memory baseline only grows. A replaced
// browser stays open until its last page is released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a browser. Close must be called when the
// manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = in
	return bm, nil
}

// Acquire returns a browser for one page and a release function to call
// once the page is closed. When the current browser has served maxPages
// pages a fresh one is launched first; if that launch fails the old browser
// keeps serving.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, fmt.Errorf("browser manager closed")
	}
	if bm.maxPages > 0 && bm.current.served >= bm.maxPages {
		bm.replace()
	}

	in := bm.current
	in.served++
	in.active++

	var once sync.Once
	release := func() {
		once.Do(func() {
			bm.mu.Lock()
			defer bm.mu.Unlock()
			in.active--
			if in.retired && in.active == 0 {
				_ = in.close()
			}
		})
	}
	return in.browser, release, nil
}

// replace must be called with mu held.
func (bm *BrowserManager) replace() {
	next, err := launch()
	if err != nil {
		return
	}
	old := bm.current
	bm.current = next
	old.retired = true
	if old.active == 0 {
		_ = old.close()
	}
}

// Close shuts down the current browser. Browsers already replaced close when
// their last page is released. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	bm.current.retired = true
	return bm.current.close()
}
