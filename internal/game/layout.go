package game

// Button is a hit region plus the image drawn for it.
type Button struct {
	Hit       Rect
	Image     Rect
	ImageID   string
	PressedID string
}

// imageFor picks the pressed variant while hovered.
func (b Button) imageFor(hovered bool) DrawCommand {
	if hovered {
		return DrawImage(b.PressedID, b.Image)
	}
	return DrawImage(b.ImageID, b.Image)
}

// Layout holds every fixed screen region for a display size.
type Layout struct {
	Width  float64
	Height float64

	HandLeft  Button
	HandRight Button

	Near Button
	Mid  Button
	Far  Button

	Retry Button
	Exit  Button
}

const (
	buttonW = 100.0
	buttonH = 125.0
)

func button(hit Rect, id string) Button {
	return Button{
		Hit:       hit,
		Image:     RectXYWH(hit.Left, hit.Top, buttonW, buttonH),
		ImageID:   id,
		PressedID: id + "_pressed",
	}
}

// NewLayout builds the menu regions for a width x height display.
// Right-anchored buttons track the display width.
func NewLayout(width, height float64) Layout {
	w := width
	l := Layout{
		Width:  width,
		Height: height,

		HandLeft:  button(Rect{Left: 100, Top: 150, Right: 200, Bottom: 200}, "hand_left"),
		HandRight: button(Rect{Left: w - 200, Top: 150, Right: w - 100, Bottom: 200}, "hand_right"),

		Near: button(Rect{Left: 50, Top: 125, Right: 150, Bottom: 250}, "distance_near"),
		Mid:  button(Rect{Left: 200, Top: 20, Right: 300, Bottom: 145}, "distance_mid"),
		Far:  button(Rect{Left: 350, Top: 125, Right: 450, Bottom: 250}, "distance_far"),

		Retry: button(Rect{Left: 100, Top: 20, Right: 200, Bottom: 145}, "retry"),
		Exit:  button(Rect{Left: w - 200, Top: 20, Right: w - 100, Bottom: 145}, "exit"),
	}
	// Hand images sit above their hit strip.
	l.HandLeft.Image = RectXYWH(100, 125, buttonW, buttonH)
	l.HandRight.Image = RectXYWH(w-200, 125, buttonW, buttonH)
	return l
}

// DefaultLayout is the layout for the sensor's native depth resolution.
func DefaultLayout() Layout {
	return NewLayout(DefaultDisplayWidth, DefaultDisplayHeight)
}

// HUD positions and font sizes.
var (
	hintAt        = Point2D{X: 90, Y: 20}
	selectHandAt  = Point2D{X: 10, Y: 20}
	scoreLineAt   = Point2D{X: 20, Y: 10}
	finalScoreAt  = Point2D{X: 70, Y: 250}
	ballIconSize  = 80.0
	ballIconInset = 10.0
)

const (
	hintFontSize       = 22.0
	selectHandFontSize = 17.0
	scoreLineFontSize  = 28.0
	adviceFontSize     = 30.0
	subAdviceFontSize  = 25.0
	finalScoreFontSize = 36.0
)

func (l Layout) ballIcon() Rect {
	return RectXYWH(l.Width-ballIconSize, ballIconInset, ballIconSize, ballIconSize)
}

func (l Layout) adviceAt() Point2D    { return Point2D{X: 20, Y: l.Height - 120} }
func (l Layout) subAdviceAt() Point2D { return Point2D{X: 20, Y: l.Height - 100} }
