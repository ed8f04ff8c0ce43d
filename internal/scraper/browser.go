package scraper

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/extraction"
	"github.com/williampepple1/party-sheet-scraper/internal/proxy"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// sheetScript copies live form state into attributes so the serialized
// sheet carries what the user sees, then returns the sheet document.
const sheetScript = `(() => {
	const frame = document.querySelector(%s);
	const doc = frame && (frame.contentDocument || (frame.contentWindow && frame.contentWindow.document));
	if (!doc || !doc.documentElement) return "";
	doc.querySelectorAll("input").forEach((el) => {
		if (el.type === "checkbox" || el.type === "radio") {
			if (el.checked) el.setAttribute("checked", ""); else el.removeAttribute("checked");
		} else {
			el.setAttribute("value", el.value);
		}
	});
	doc.querySelectorAll("textarea").forEach((el) => { el.textContent = el.value; });
	doc.querySelectorAll("select option").forEach((el) => {
		if (el.selected) el.setAttribute("selected", ""); else el.removeAttribute("selected");
	});
	return doc.documentElement.outerHTML;
})()`

const clickScript = `(() => {
	const el = document.querySelector(%s);
	if (!el) return false;
	el.click();
	return true;
})()`

// BrowserPage drives a live game tab in Chrome
type BrowserPage struct {
	Config *config.AppConfig

	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	attached    bool
}

// NewBrowserPage attaches to the game tab of a running Chrome when a remote
// URL is configured, otherwise it launches a browser and opens the game URL.
func NewBrowserPage(ctx context.Context, cfg *config.AppConfig) (*BrowserPage, error) {
	if cfg.Browser.RemoteURL != "" {
		return attachBrowserPage(ctx, cfg)
	}

	if cfg.Browser.GameURL == "" {
		return nil, fmt.Errorf("browser mode needs a game URL or a remote URL")
	}

	// Configure browser options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Browser.Headless),
		chromedp.UserAgent(cfg.Browser.UserAgent),
	)
	if cfg.Browser.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.Browser.UserDataDir))
	}
	proxyURL, err := proxy.NewManager(&cfg.Proxies).Next()
	if err != nil {
		return nil, fmt.Errorf("select proxy: %w", err)
	}
	if proxyURL != nil {
		opts = append(opts, chromedp.ProxyServer(proxy.ServerAddress(proxyURL)))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)
	page := &BrowserPage{Config: cfg, tab: tab, cancelTab: cancelTab, cancelAlloc: cancelAlloc}

	// The wait leaves time to sign in when the profile has no session yet
	log.Printf("Opening %s (waiting %v for the page to settle)", cfg.Browser.GameURL, cfg.Browser.WaitTime)
	if err := chromedp.Run(tab,
		chromedp.Navigate(cfg.Browser.GameURL),
		chromedp.Sleep(cfg.Browser.WaitTime),
	); err != nil {
		page.Close()
		return nil, fmt.Errorf("open game page: %w", err)
	}
	return page, nil
}

// attachBrowserPage connects to a running Chrome and drives its game tab.
// The chromedp contexts are detached from ctx: cancelling them would close
// the tab and the user's browser.
func attachBrowserPage(ctx context.Context, cfg *config.AppConfig) (*BrowserPage, error) {
	allocCtx, _ := chromedp.NewRemoteAllocator(context.WithoutCancel(ctx), cfg.Browser.RemoteURL)
	browserCtx, _ := chromedp.NewContext(allocCtx)

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		return nil, fmt.Errorf("list browser tabs: %w", err)
	}

	for _, t := range targets {
		if t.Type != "page" || !isGameTab(t.URL, cfg.Browser.GameURL) {
			continue
		}
		tab, _ := chromedp.NewContext(browserCtx, chromedp.WithTargetID(t.TargetID))
		page := &BrowserPage{Config: cfg, tab: tab, attached: true}

		// The first Run attaches the session and binds its event loop to the
		// context it is given, so it must not carry a timeout.
		if err := chromedp.Run(tab); err != nil {
			page.Close()
			return nil, fmt.Errorf("attach game tab: %w", err)
		}
		log.Printf("Attached to game tab %s", t.URL)
		return page, nil
	}

	return nil, fmt.Errorf("no game tab found at %s", cfg.Browser.RemoteURL)
}

func isGameTab(tabURL, gameURL string) bool {
	if gameURL != "" {
		return strings.HasPrefix(tabURL, gameURL)
	}
	return strings.Contains(tabURL, "/editor")
}

// run executes actions on the game tab, bounded by the browser timeout and
// cancelled together with ctx.
func (b *BrowserPage) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(b.tab, b.Config.Browser.Timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (b *BrowserPage) document(ctx context.Context) (*goquery.Document, error) {
	var html string
	if err := b.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("read game page: %w", err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (b *BrowserPage) Candidates(ctx context.Context) ([]models.Candidate, error) {
	doc, err := b.document(ctx)
	if err != nil {
		return nil, err
	}
	return extraction.ParseCandidates(doc)
}

func (b *BrowserPage) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	doc, err := b.document(ctx)
	if err != nil {
		return nil, err
	}
	return extraction.ParseRoster(doc), nil
}

// Activate clicks the candidate's roster entry
func (b *BrowserPage) Activate(ctx context.Context, c models.Candidate) error {
	var clicked bool
	script := fmt.Sprintf(clickScript, strconv.Quote(extraction.RosterNameSelector(c.ID)))
	if err := b.run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return fmt.Errorf("click roster entry: %w", err)
	}
	if !clicked {
		return fmt.Errorf("roster entry for %s not found", c.ID)
	}
	return nil
}

// View serializes the candidate's sheet frame
func (b *BrowserPage) View(ctx context.Context, c models.Candidate) (*extraction.View, error) {
	var html string
	script := fmt.Sprintf(sheetScript, strconv.Quote(SheetFrameSelector(c.ID)))
	if err := b.run(ctx, chromedp.Evaluate(script, &html)); err != nil {
		return nil, fmt.Errorf("read sheet frame: %w", err)
	}
	if html == "" {
		return nil, nil
	}
	return extraction.ParseView(strings.NewReader(html))
}

// Close releases the tab and the browser it launched. An attached page only
// ends its debugging session and leaves the tab and the browser running.
func (b *BrowserPage) Close() {
	if b.attached {
		b.detach()
		return
	}
	if b.cancelTab != nil {
		b.cancelTab()
	}
	if b.cancelAlloc != nil {
		b.cancelAlloc()
	}
}

func (b *BrowserPage) detach() {
	c := chromedp.FromContext(b.tab)
	if c == nil || c.Browser == nil || c.Target == nil || c.Target.SessionID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := target.DetachFromTarget().WithSessionID(c.Target.SessionID).Do(cdp.WithExecutor(ctx, c.Browser))
	if err != nil {
		log.Printf("Detach from game tab: %v", err)
	}
}

// SheetFrameSelector returns the selector of a character's sheet frame
func SheetFrameSelector(id string) string {
	return `iframe[name="iframe_` + id + `"]`
}
