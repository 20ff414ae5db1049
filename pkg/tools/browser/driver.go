package browser

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/playwright-community/playwright-go"
)

// Driver launches browsers. It hides the Playwright runtime so the session
// state machine can be exercised without a real browser.
type Driver interface {
	// Launch starts a browser with the given options.
	Launch(ctx context.Context, opts Options) (playwright.Browser, error)

	// Stop shuts down the underlying runtime. Browsers launched earlier become unusable.
	Stop() error
}

// PlaywrightDriver launches Chromium through playwright-go. The Playwright
// runtime is installed and started lazily on the first Launch and shared by
// every session created from the same driver.
type PlaywrightDriver struct {
	mu         sync.Mutex
	playwright *playwright.Playwright
	install    bool
	runOpts    *playwright.RunOptions
}

// DriverOption configures a PlaywrightDriver.
type DriverOption func(*PlaywrightDriver)

// WithInstall controls whether browsers are downloaded before the first launch.
func WithInstall(install bool) DriverOption {
	return func(d *PlaywrightDriver) {
		d.install = install
	}
}

// WithDriverOutput sends Playwright driver output to w instead of discarding it.
func WithDriverOutput(w io.Writer) DriverOption {
	return func(d *PlaywrightDriver) {
		d.runOpts.Stdout = w
		d.runOpts.Stderr = w
		d.runOpts.Verbose = true
	}
}

// NewPlaywrightDriver creates a driver. Browsers are installed by default.
func NewPlaywrightDriver(opts ...DriverOption) *PlaywrightDriver {
	d := &PlaywrightDriver{
		install: true,
		runOpts: &playwright.RunOptions{
			Browsers: []string{"chromium"},
			Verbose:  false,
			Stdout:   io.Discard,
			Stderr:   io.Discard,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// start installs and runs Playwright once.
func (d *PlaywrightDriver) start() (*playwright.Playwright, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.playwright != nil {
		return d.playwright, nil
	}

	if d.install {
		if err := playwright.Install(d.runOpts); err != nil {
			return nil, errors.Wrap(err, "failed to install playwright")
		}
	}

	pw, err := playwright.Run(d.runOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start playwright")
	}

	d.playwright = pw
	return pw, nil
}

// Launch implements Driver.
func (d *PlaywrightDriver) Launch(ctx context.Context, opts Options) (playwright.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := d.start()
	if err != nil {
		return nil, err
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to launch chromium")
	}
	return browser, nil
}

// Stop implements Driver. Safe to call when Playwright never started.
func (d *PlaywrightDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.playwright == nil {
		return nil
	}
	err := d.playwright.Stop()
	d.playwright = nil
	if err != nil {
		return errors.Wrap(err, "failed to stop playwright")
	}
	return nil
}
