package playback

import "testing"

func TestParseOptionsDefaults(t *testing.T) {
	opts := ParseOptions("http://localhost:3000/history")
	if opts.Play {
		t.Fatalf("play must default to false")
	}
	if !opts.ShowControls {
		t.Fatalf("showControls must default to true")
	}
}

func TestParseOptionsQueryValues(t *testing.T) {
	opts := ParseOptions("http://localhost:3000/history?play=true&showControls=false")
	if !opts.Play {
		t.Fatalf("expected play=true")
	}
	if opts.ShowControls {
		t.Fatalf("expected showControls=false")
	}
}

func TestParseOptionsMalformedValuesFallBack(t *testing.T) {
	opts := ParseOptions("http://localhost:3000/?play=yes-please&showControls=")
	if opts.Play {
		t.Fatalf("malformed play value must fall back to false")
	}
	if !opts.ShowControls {
		t.Fatalf("absent showControls value must fall back to true")
	}
}

func TestParseOptionsUnparseableURL(t *testing.T) {
	opts := ParseOptions("http://[::1:bad")
	if opts != DefaultOptions() {
		t.Fatalf("unparseable URL must yield defaults, got %+v", opts)
	}
}
