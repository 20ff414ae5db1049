package browser

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/playwright-community/playwright-go"
)

// closeLog records the order in which fake resources are closed.
type closeLog struct {
	order []string
}

type fakePage struct {
	playwright.Page
	log      *closeLog
	closeErr error

	url         string
	title       string
	content     string
	text        map[string]string
	evalResult  interface{}
	clicked     []string
	filled      map[string]string
	waited      []float64
	lastTimeout float64
	gotoErr     error
}

func newFakePage(log *closeLog) *fakePage {
	return &fakePage{
		log:    log,
		url:    "about:blank",
		text:   map[string]string{},
		filled: map[string]string{},
	}
}

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	p.log.order = append(p.log.order, "page")
	return p.closeErr
}

func (p *fakePage) SetDefaultTimeout(timeout float64) {
	p.lastTimeout = timeout
}

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	if p.gotoErr != nil {
		return nil, p.gotoErr
	}
	p.url = url
	p.title = "Title of " + url
	return nil, nil
}

func (p *fakePage) Title() (string, error) {
	return p.title, nil
}

func (p *fakePage) URL() string {
	return p.url
}

func (p *fakePage) Click(selector string, options ...playwright.PageClickOptions) error {
	p.clicked = append(p.clicked, selector)
	return nil
}

func (p *fakePage) Fill(selector, value string, options ...playwright.PageFillOptions) error {
	p.filled[selector] = value
	return nil
}

func (p *fakePage) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	return []byte("png"), nil
}

func (p *fakePage) Content() (string, error) {
	return p.content, nil
}

func (p *fakePage) TextContent(selector string, options ...playwright.PageTextContentOptions) (string, error) {
	text, ok := p.text[selector]
	if !ok {
		return "", errors.Newf("no element matches %s", selector)
	}
	return text, nil
}

func (p *fakePage) WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error) {
	if len(options) > 0 && options[0].Timeout != nil {
		p.waited = append(p.waited, *options[0].Timeout)
	}
	return nil, nil
}

func (p *fakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	return p.evalResult, nil
}

type fakeContext struct {
	playwright.BrowserContext
	log        *closeLog
	page       *fakePage
	closeErr   error
	newPageErr error
	closed     bool
}

func (c *fakeContext) NewPage() (playwright.Page, error) {
	if c.newPageErr != nil {
		return nil, c.newPageErr
	}
	return c.page, nil
}

func (c *fakeContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.closed = true
	c.log.order = append(c.log.order, "context")
	return c.closeErr
}

type fakeBrowser struct {
	playwright.Browser
	log      *closeLog
	ctx      *fakeContext
	closeErr error
	viewport *playwright.Size
	closed   bool
}

func (b *fakeBrowser) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	if len(options) > 0 {
		b.viewport = options[0].Viewport
	}
	return b.ctx, nil
}

func (b *fakeBrowser) Close(options ...playwright.BrowserCloseOptions) error {
	b.closed = true
	b.log.order = append(b.log.order, "browser")
	return b.closeErr
}

// fakeDriver hands out a fresh fake browser per launch.
type fakeDriver struct {
	log       *closeLog
	launches  int
	launchErr error
	stopped   bool

	// configure is applied to every browser before it is returned.
	configure func(*fakeBrowser)
	browsers  []*fakeBrowser
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{log: &closeLog{}}
}

func (d *fakeDriver) Launch(ctx context.Context, opts Options) (playwright.Browser, error) {
	if d.launchErr != nil {
		return nil, d.launchErr
	}
	d.launches++

	page := newFakePage(d.log)
	b := &fakeBrowser{
		log: d.log,
		ctx: &fakeContext{log: d.log, page: page},
	}
	if d.configure != nil {
		d.configure(b)
	}
	d.browsers = append(d.browsers, b)
	return b, nil
}

func (d *fakeDriver) Stop() error {
	d.stopped = true
	return nil
}

func (d *fakeDriver) lastPage() *fakePage {
	return d.browsers[len(d.browsers)-1].ctx.page
}
