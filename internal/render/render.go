// internal/render/render.go
//
// Turns a base64-encoded PNG snapshot into terminal cells. Each cell covers
// two vertically stacked pixels using the upper half block glyph, with the
// cell foreground carrying the top pixel and the background the bottom one.

package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logoline/internal/history"
)

// Placeholder is a 1x1 transparent PNG, shown while the timeline is loading
// and whenever the cursor points outside it. Keeps the image pane from ever
// rendering a broken frame.
const Placeholder = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAAC0lEQVR4nGNgAAIAAAUAAXpeqz8AAAAASUVORK5CYII="

const halfBlock = "▀"

// PayloadAt selects the image payload for the given cursor: the snapshot at
// that position when one exists, otherwise the placeholder.
func PayloadAt(hist history.History, cursor int) string {
	if cursor < 0 || cursor >= len(hist) {
		return Placeholder
	}
	return hist[cursor].Logo
}

// Image renders a base64 PNG payload at the given cell width. Payloads that
// fail base64 or PNG decoding degrade to the placeholder, the same path an
// out-of-range cursor takes.
func Image(payload string, width int) string {
	img, err := decode(payload)
	if err != nil {
		img, err = decode(Placeholder)
		if err != nil {
			return ""
		}
	}
	return cells(img, width)
}

func decode(payload string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("render: decode base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("render: decode image: %w", err)
	}
	return img, nil
}

// cells scales the image to the target width with nearest-neighbour
// sampling and emits one line per two pixel rows.
func cells(img image.Image, width int) string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}
	if width < 1 {
		width = 1
	}
	if width > srcW {
		width = srcW
	}
	height := srcH * width / srcW
	if height < 1 {
		height = 1
	}

	sample := func(x, y int) (lipgloss.Color, bool) {
		sx := bounds.Min.X + x*srcW/width
		sy := bounds.Min.Y + y*srcH/height
		r, g, b, a := img.At(sx, sy).RGBA()
		if a < 0x8000 {
			return "", false
		}
		c := color.NRGBAModel.Convert(color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}).(color.NRGBA)
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}

	var lines []string
	for y := 0; y < height; y += 2 {
		var row strings.Builder
		for x := 0; x < width; x++ {
			top, topOK := sample(x, y)
			var bottom lipgloss.Color
			bottomOK := false
			if y+1 < height {
				bottom, bottomOK = sample(x, y+1)
			}
			switch {
			case topOK && bottomOK:
				row.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render(halfBlock))
			case topOK:
				row.WriteString(lipgloss.NewStyle().Foreground(top).Render(halfBlock))
			case bottomOK:
				row.WriteString(lipgloss.NewStyle().Foreground(bottom).Render("▄"))
			default:
				row.WriteString(" ")
			}
		}
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}
