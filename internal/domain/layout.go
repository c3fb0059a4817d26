package domain

// Rect is an axis aligned box on the layout canvas. Y grows downward.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Overlaps reports whether a and b come closer than margin to each other.
func Overlaps(a, b Rect, margin int) bool {
	separated := a.Right()+margin <= b.Left() ||
		a.Left() >= b.Right()+margin ||
		a.Bottom()+margin <= b.Top() ||
		a.Top() >= b.Bottom()+margin
	return !separated
}

type Size struct {
	Width  int `mapstructure:"width" json:"width"`
	Height int `mapstructure:"height" json:"height"`
}

// Canvas is the fixed logical floor plan tables are placed on.
type Canvas struct {
	Width  int                `json:"width"`
	Height int                `json:"height"`
	Margin int                `json:"margin"`
	Shapes map[TableShape]Size `json:"shapes"`
}

func (c Canvas) SizeOf(shape TableShape) (Size, error) {
	size, ok := c.Shapes[shape]
	if !ok {
		return Size{}, Validationf("unknown table shape %q", shape)
	}
	return size, nil
}

// Contains reports whether r lies fully on the canvas. Bounds are compared by
// subtraction so huge coordinates cannot wrap around.
func (c Canvas) Contains(r Rect) bool {
	if r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0 {
		return false
	}
	if r.Width > c.Width || r.Height > c.Height {
		return false
	}
	return r.X <= c.Width-r.Width && r.Y <= c.Height-r.Height
}

// CollidesWith returns the first rect of others that r overlaps.
func (c Canvas) CollidesWith(r Rect, others []Rect) (Rect, bool) {
	for _, o := range others {
		if Overlaps(r, o, c.Margin) {
			return o, true
		}
	}
	return Rect{}, false
}

// NextPosition scans the canvas row-major from the origin and returns the first
// position where a box of the given size fits next to the occupied rects.
func (c Canvas) NextPosition(size Size, occupied []Rect) (int, int, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return 0, 0, Validationf("table size must be positive")
	}
	for y := 0; y+size.Height <= c.Height; y += size.Height + c.Margin {
		for x := 0; x+size.Width <= c.Width; x += size.Width + c.Margin {
			candidate := Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
			if _, hit := c.CollidesWith(candidate, occupied); !hit {
				return x, y, nil
			}
		}
	}
	return 0, 0, NewError(ErrCapacityExceeded, "no free position left on the %dx%d canvas", c.Width, c.Height)
}

// ValidateLayout checks that every rect lies on the canvas and that no two rects overlap.
// It returns the indexes of the first offending pair.
func (c Canvas) ValidateLayout(rects []Rect) (int, int, bool) {
	for i := range rects {
		if !c.Contains(rects[i]) {
			return i, i, false
		}
		for j := i + 1; j < len(rects); j++ {
			if Overlaps(rects[i], rects[j], c.Margin) {
				return i, j, false
			}
		}
	}
	return 0, 0, true
}
