package browser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/conductor/pkg/agent/tools"
	"github.com/entrhq/conductor/pkg/logging"
)

// ErrSessionNotReady is returned by page operations while the session is not Active.
var ErrSessionNotReady = tools.ErrSessionNotReady

var browserLog *logging.Logger

func init() {
	var err error
	browserLog, err = logging.NewLogger("browser")
	if err != nil {
		browserLog.Warnf("Failed to initialize browser logger, using stderr fallback: %v", err)
	}
}

// Session is the single browser/context/page triple owned by one orchestrator.
//
// Session has no lock of its own: exactly one caller may drive it at a time,
// which the orchestrator guarantees by dispatching tools sequentially.
type Session struct {
	driver  Driver
	opts    Options
	logger  *logging.Logger
	state   State
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	// viewport is the size applied by the last successful Initialize.
	viewport Viewport

	lastCleanupErrors []error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOptions replaces the launch options.
func WithOptions(opts Options) SessionOption {
	return func(s *Session) {
		s.opts = opts
	}
}

// WithHeadless toggles headless mode.
func WithHeadless(headless bool) SessionOption {
	return func(s *Session) {
		s.opts.Headless = headless
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(logger *logging.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates an Uninitialized session. A nil driver uses a new PlaywrightDriver.
func NewSession(driver Driver, opts ...SessionOption) *Session {
	if driver == nil {
		driver = NewPlaywrightDriver()
	}
	s := &Session{
		driver: driver,
		opts:   DefaultOptions(),
		logger: browserLog,
		state:  StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Options returns the launch options.
func (s *Session) Options() Options {
	return s.opts
}

// Viewport returns the page size applied by the last successful Initialize.
// It is the zero Viewport until the session has been initialized once.
func (s *Session) Viewport() Viewport {
	return s.viewport
}

// LastCleanupErrors returns the teardown failures recorded by the most recent Cleanup.
func (s *Session) LastCleanupErrors() []error {
	out := make([]error, len(s.lastCleanupErrors))
	copy(out, s.lastCleanupErrors)
	return out
}

// Initialize moves an Uninitialized or Closed session to Active by launching a
// browser, a context and a page. It is a no-op on an Active session. On failure
// the resources created so far are released and the state is unchanged.
func (s *Session) Initialize(ctx context.Context) error {
	if s.state == StateActive {
		return nil
	}

	browser, err := s.driver.Launch(ctx, s.opts)
	if err != nil {
		return errors.Wrap(err, "failed to launch browser")
	}

	viewport := s.opts.Viewport
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewport.Width,
			Height: viewport.Height,
		},
	})
	if err != nil {
		_ = browser.Close()
		return errors.Wrap(err, "failed to create browser context")
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		return errors.Wrap(err, "failed to create page")
	}

	if s.opts.Timeout > 0 {
		page.SetDefaultTimeout(s.opts.Timeout)
	}

	s.browser = browser
	s.context = bctx
	s.page = page
	s.viewport = viewport
	s.state = StateActive
	s.lastCleanupErrors = nil

	s.logger.Infof("Browser session initialized (headless=%t, viewport=%dx%d)", s.opts.Headless, viewport.Width, viewport.Height)
	return nil
}

// Cleanup tears down the page, then the context, then the browser. Every
// sub-resource is attempted even if an earlier one fails; failures are logged
// and kept in LastCleanupErrors. The session always ends Closed.
func (s *Session) Cleanup() {
	var errs []error

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close page"))
		}
		s.page = nil
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close browser context"))
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close browser"))
		}
		s.browser = nil
	}

	for _, err := range errs {
		s.logger.Warnf("Browser cleanup: %v", err)
	}
	if s.state == StateActive {
		s.logger.Infof("Browser session closed")
	}

	s.lastCleanupErrors = errs
	s.state = StateClosed
}

// Shutdown cleans up the session and stops the driver.
func (s *Session) Shutdown() error {
	s.Cleanup()
	return s.driver.Stop()
}

func (s *Session) requireActive(op string) (playwright.Page, error) {
	if s.state != StateActive || s.page == nil {
		return nil, errors.Wrapf(ErrSessionNotReady,
			"%s requires an initialized browser (state: %s); call playwright_init first", op, s.state)
	}
	return s.page, nil
}

// Navigate loads url and waits for the network to go idle.
func (s *Session) Navigate(url string) (*PageInfo, error) {
	page, err := s.requireActive("navigate")
	if err != nil {
		return nil, err
	}

	waitUntil := playwright.WaitUntilState("networkidle")
	if _, err := page.Goto(url, playwright.PageGotoOptions{WaitUntil: &waitUntil}); err != nil {
		return nil, errors.Wrapf(err, "navigation to %s failed", url)
	}

	title, err := page.Title()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read page title")
	}
	return &PageInfo{URL: page.URL(), Title: title}, nil
}

// Click clicks the first element matching selector.
func (s *Session) Click(selector string) error {
	page, err := s.requireActive("click")
	if err != nil {
		return err
	}
	if err := page.Click(selector); err != nil {
		return errors.Wrapf(err, "click on %q failed", selector)
	}
	return nil
}

// Type fills the input matching selector with text.
func (s *Session) Type(selector, text string) error {
	page, err := s.requireActive("type")
	if err != nil {
		return err
	}
	if err := page.Fill(selector, text); err != nil {
		return errors.Wrapf(err, "typing into %q failed", selector)
	}
	return nil
}

// Screenshot captures the full page as a PNG data URL.
func (s *Session) Screenshot() (string, error) {
	page, err := s.requireActive("screenshot")
	if err != nil {
		return "", err
	}

	png, err := page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Type:     playwright.ScreenshotTypePng,
	})
	if err != nil {
		return "", errors.Wrap(err, "screenshot failed")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GetText returns the text content of the element matching selector. An empty
// selector returns the visible text of the whole page.
func (s *Session) GetText(selector string) (string, error) {
	page, err := s.requireActive("get text")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(selector) == "" {
		content, err := page.Content()
		if err != nil {
			return "", errors.Wrap(err, "failed to read page content")
		}
		return visibleText(content)
	}

	text, err := page.TextContent(selector)
	if err != nil {
		return "", errors.Wrapf(err, "reading text of %q failed", selector)
	}
	return text, nil
}

// WaitFor waits until selector appears. timeout is in milliseconds; zero or
// less uses DefaultWaitTimeout.
func (s *Session) WaitFor(selector string, timeout float64) error {
	page, err := s.requireActive("wait for")
	if err != nil {
		return err
	}

	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if _, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(timeout),
	}); err != nil {
		return errors.Wrapf(err, "waiting for %q failed", selector)
	}
	return nil
}

// Evaluate runs a JavaScript expression in the page and returns its result as JSON.
func (s *Session) Evaluate(expression string) (string, error) {
	page, err := s.requireActive("evaluate")
	if err != nil {
		return "", err
	}

	result, err := page.Evaluate(expression)
	if err != nil {
		return "", errors.Wrap(err, "javascript evaluation failed")
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode evaluation result")
	}
	return string(encoded), nil
}

// GetPageInfo returns the current URL and title.
func (s *Session) GetPageInfo() (*PageInfo, error) {
	page, err := s.requireActive("get page info")
	if err != nil {
		return nil, err
	}

	title, err := page.Title()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read page title")
	}
	return &PageInfo{URL: page.URL(), Title: title}, nil
}
