package tooltip

// Geometry constants, in CSS pixels.
const (
	Offset = 8 // gap between the target and the tooltip
	Margin = 8 // minimum distance from the viewport edges
)

// Rect is a target's bounding box relative to the viewport.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is the rendered tooltip size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport describes the visible document area.
type Viewport struct {
	Width   float64 `json:"width"`
	ScrollX float64 `json:"scrollX"`
	ScrollY float64 `json:"scrollY"`
}

// Point is a document-relative position.
type Point struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Position places the tooltip centered above target, Offset pixels away.
// The left edge is clamped into [Margin, viewport-Margin-width]; when the
// tooltip is wider than the viewport the right clamp wins. The top is never
// less than Margin.
func Position(target Rect, tip Size, vp Viewport) Point {
	top := vp.ScrollY + target.Top - tip.Height - Offset
	left := vp.ScrollX + target.Left + target.Width/2 - tip.Width/2

	if left < Margin {
		left = Margin
	}
	if left+tip.Width > vp.Width-Margin {
		left = vp.Width - tip.Width - Margin
	}
	if top < Margin {
		top = Margin
	}

	return Point{Left: left, Top: top}
}
