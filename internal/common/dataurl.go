package common

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const SVGMediaType = "image/svg+xml"

// imagePrefix matches the header of a base64 raster data URL
var imagePrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// DataURL is a parsed RFC 2397 data URL
type DataURL struct {
	MediaType string
	Base64    bool
	Data      []byte
}

// IsSVGDataURL reports whether s is a vector image data URL
func IsSVGDataURL(s string) bool {
	return strings.HasPrefix(s, "data:"+SVGMediaType)
}

// StripImagePrefix removes the data:image/<type>;base64, header if present
func StripImagePrefix(s string) string {
	return imagePrefix.ReplaceAllString(s, "")
}

// ParseDataURL decodes a data URL. Non-base64 payloads are percent-decoded.
func ParseDataURL(s string) (*DataURL, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	header, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return nil, fmt.Errorf("data URL has no payload separator")
	}

	params := strings.Split(header, ";")
	out := &DataURL{MediaType: strings.ToLower(strings.TrimSpace(params[0]))}
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			out.Base64 = true
		}
	}
	if out.MediaType == "" {
		out.MediaType = "text/plain"
	}

	if out.Base64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some producers drop padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
			}
		}
		out.Data = data
		return out, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape payload: %w", err)
	}
	out.Data = []byte(text)
	return out, nil
}
