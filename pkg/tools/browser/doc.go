// Package browser provides browser automation through Playwright.
//
// # Session Lifecycle
//
// A Session is a single browser/context/page triple with an explicit state machine:
//
//	Uninitialized --Initialize--> Active --Cleanup--> Closed --Initialize--> Active
//
// Page operations (Navigate, Click, Type, Screenshot, GetText, WaitFor, Evaluate,
// GetPageInfo) require Active and fail with ErrSessionNotReady otherwise; there is
// no implicit initialization. Cleanup is idempotent and best-effort: page, context
// and browser are closed in that order, failures are recorded in LastCleanupErrors,
// and the session always ends Closed.
//
// # Tools
//
// ToolRegistry exposes the session to the model as playwright_init,
// playwright_navigate, playwright_click, playwright_type, playwright_screenshot,
// playwright_get_text, playwright_wait_for, playwright_evaluate,
// playwright_get_page_info and playwright_cleanup.
//
// # Drivers
//
// Browsers are launched through a Driver. PlaywrightDriver installs and starts
// the Playwright runtime on first use and launches headless Chromium with
// --no-sandbox and a 1280x720 viewport by default. One driver may back many
// sessions.
package browser
