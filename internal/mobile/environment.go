package mobile

import "regexp"

var (
	androidPattern = regexp.MustCompile(`(?i)android`)
	webViewPattern = regexp.MustCompile(`(?i)(WebView|Version/.+(Chrome)/(\d+)\.(\d+)\.(\d+)\.(\d+)|; wv\).+(Chrome)/(\d+)\.(\d+)\.(\d+)\.(\d+))`)
)

// IsMobileEnvironment reports whether the host can reach a wallet app over
// the mobile transport: an Android browser, not an embedded WebView, in a secure context.
func IsMobileEnvironment(userAgent string, secureContext bool) bool {
	if !secureContext || userAgent == "" {
		return false
	}
	return androidPattern.MatchString(userAgent) && !webViewPattern.MatchString(userAgent)
}
