package shape

// MoveTo centers s on p
func MoveTo(s Shape, p Vec) {
	s.Shift(p.Sub(s.Bounds().Center()))
}

// NextTo places s beside ref in direction dir, leaving buff along dir.
// Diagonal directions align corners: NextTo(a, b, Down.Add(Left), 0) puts
// a's upper-right corner on b's lower-left corner.
func NextTo(s, ref Shape, dir Vec, buff float64) {
	target := ref.Bounds().CriticalPoint(dir)
	self := s.Bounds().CriticalPoint(dir.Mul(-1))
	s.Shift(target.Sub(self).Add(dir.Mul(buff)))
}

// ToEdge pushes s against the frame edge in direction dir, keeping EdgeBuff
// of margin. Axes where dir is zero are left alone.
func ToEdge(s Shape, dir Vec, frame Box) {
	target := frame.CriticalPoint(dir).Sub(dir.Mul(EdgeBuff))
	self := s.Bounds().CriticalPoint(dir)
	d := target.Sub(self)
	if dir.X == 0 {
		d.X = 0
	}
	if dir.Y == 0 {
		d.Y = 0
	}
	s.Shift(d)
}

// FrameBox is the visible frame of the given size in frame units
func FrameBox(width, height float64) Box {
	return BoxAround(Origin, width, height)
}
