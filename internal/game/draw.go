package game

// DrawKind discriminates the draw command variants.
type DrawKind string

const (
	KindBackgroundImage DrawKind = "background"
	KindSkeleton        DrawKind = "skeleton"
	KindRect            DrawKind = "rect"
	KindEllipse         DrawKind = "ellipse"
	KindText            DrawKind = "text"
	KindImage           DrawKind = "image"
)

// Style names a pen or brush the renderer owns.
type Style string

const (
	StyleTracked      Style = "tracked"
	StyleInferred     Style = "inferred"
	StyleClipEdge     Style = "clip_edge"
	StyleFloorPlaced  Style = "floor_placed"
	StyleFloorSeeking Style = "floor_seeking"
	StyleGestureGoal  Style = "gesture_goal"
	StyleHint         Style = "hint"
	StyleAdvice       Style = "advice"
	StyleScore        Style = "score"
)

// Image ids the renderer resolves to assets.
const (
	ImageMenu     = "menu"
	ImageCourt    = "court"
	ImageGameOver = "game_over"
	ImageBall     = "ball"
	ImageNoBall   = "no_ball"
)

// BoneLine is one drawable skeleton segment.
type BoneLine struct {
	From  Point2D `json:"from"`
	To    Point2D `json:"to"`
	Style Style   `json:"style"`
}

// JointDot is one drawable skeleton joint.
type JointDot struct {
	At     Point2D `json:"at"`
	Radius float64 `json:"radius"`
	Style  Style   `json:"style"`
}

// SkeletonShape is the payload of a skeleton draw command.
type SkeletonShape struct {
	Bones  []BoneLine `json:"bones"`
	Joints []JointDot `json:"joints"`
}

// DrawCommand is one renderer instruction. Only the fields of its Kind are set.
type DrawCommand struct {
	Kind     DrawKind       `json:"kind"`
	ImageID  string         `json:"image_id,omitempty"`
	Rect     *Rect          `json:"rect,omitempty"`
	Center   *Point2D       `json:"center,omitempty"`
	RadiusX  float64        `json:"rx,omitempty"`
	RadiusY  float64        `json:"ry,omitempty"`
	Text     string         `json:"text,omitempty"`
	Position *Point2D       `json:"position,omitempty"`
	FontSize float64        `json:"font_size,omitempty"`
	Style    Style          `json:"style,omitempty"`
	Skeleton *SkeletonShape `json:"skeleton,omitempty"`
}

func DrawBackgroundImage(id string) DrawCommand {
	return DrawCommand{Kind: KindBackgroundImage, ImageID: id}
}

func DrawSkeleton(s SkeletonShape) DrawCommand {
	return DrawCommand{Kind: KindSkeleton, Skeleton: &s}
}

func DrawRect(r Rect, style Style) DrawCommand {
	return DrawCommand{Kind: KindRect, Rect: &r, Style: style}
}

func DrawEllipse(center Point2D, rx, ry float64, style Style) DrawCommand {
	return DrawCommand{Kind: KindEllipse, Center: &center, RadiusX: rx, RadiusY: ry, Style: style}
}

func DrawText(text string, at Point2D, size float64, style Style) DrawCommand {
	return DrawCommand{Kind: KindText, Text: text, Position: &at, FontSize: size, Style: style}
}

func DrawImage(id string, r Rect) DrawCommand {
	return DrawCommand{Kind: KindImage, ImageID: id, Rect: &r}
}
