package session

import (
	"io"

	"github.com/pkg/browser"
)

// Opener shows a URL to the user, typically a wallet install page
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the system browser
type BrowserOpener struct{}

// NewBrowserOpener creates an opener that keeps browser output off the service's stdout
func NewBrowserOpener() BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return BrowserOpener{}
}

func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

// NoopOpener ignores install links, for non-interactive hosts
type NoopOpener struct{}

func (NoopOpener) Open(string) error { return nil }
