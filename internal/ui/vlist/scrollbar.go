package vlist

const (
	trackGlyph = "│"
	thumbGlyph = "┃"
)

// Scrollbar returns one glyph per viewport line. The thumb length and
// position reflect the full content height, as if every row were drawn.
func Scrollbar(height, total, offset int) []string {
	if height <= 0 {
		return nil
	}
	bar := make([]string, height)
	for i := range bar {
		bar[i] = trackGlyph
	}
	if total <= height {
		return bar
	}

	thumb := max(1, height*height/total)
	maxOffset := total - height
	offset = min(max(offset, 0), maxOffset)
	pos := (height - thumb) * offset / maxOffset

	for i := pos; i < pos+thumb && i < height; i++ {
		bar[i] = thumbGlyph
	}
	return bar
}
