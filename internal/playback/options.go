package playback

import (
	"net/url"
	"strconv"
)

// Options are the startup parameters read once from the viewer URL's query
// string, mirroring the page query parameters of the web frontend.
type Options struct {
	Play         bool
	ShowControls bool
}

// DefaultOptions returns the documented defaults: paused, controls visible.
func DefaultOptions() Options {
	return Options{Play: false, ShowControls: true}
}

// ParseOptions reads `play` and `showControls` from the query string of the
// given URL. Unrecognized or absent values fall back to defaults; malformed
// query values surface no error.
func ParseOptions(rawURL string) Options {
	opts := DefaultOptions()
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return opts
	}
	query := parsed.Query()
	if value, err := strconv.ParseBool(query.Get("play")); err == nil {
		opts.Play = value
	}
	if value, err := strconv.ParseBool(query.Get("showControls")); err == nil {
		opts.ShowControls = value
	}
	return opts
}
