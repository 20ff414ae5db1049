package browser

// State is the lifecycle state of a Session.
type State int

const (
	// StateUninitialized is the state of a freshly constructed session.
	StateUninitialized State = iota
	// StateActive means the browser, context and page are allocated.
	StateActive
	// StateClosed means the session was cleaned up. It may be initialized again.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const (
	// DefaultViewportWidth and DefaultViewportHeight size new contexts.
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// DefaultTimeout is the page's default operation timeout in milliseconds.
	DefaultTimeout = 30000

	// DefaultWaitTimeout is used by WaitFor when no timeout is given, in milliseconds.
	DefaultWaitTimeout = 5000

	// MaxWaitTimeout bounds the timeout a caller may ask WaitFor for.
	MaxWaitTimeout = 300000
)

// Options configures how a session launches its browser.
type Options struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport Viewport

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64

	// Args are extra command line flags passed to Chromium
	Args []string
}

// DefaultOptions returns headless Chromium with a 1280x720 viewport.
func DefaultOptions() Options {
	return Options{
		Headless: true,
		Viewport: Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		Timeout:  DefaultTimeout,
		Args:     []string{"--no-sandbox", "--disable-setuid-sandbox"},
	}
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// PageInfo is the current location of the session's page.
type PageInfo struct {
	URL   string
	Title string
}
