package numeric

// Range represents a continuous range of float32 values with inclusive bounds.
type Range struct {
	Min float32
	Max float32
}

// NewRange returns the range [min, max].
func NewRange(min, max float32) Range {
	return Range{Min: min, Max: max}
}

// Length returns the length of the range (difference between maximum and
// minimum values).
func (r Range) Length() float32 {
	return r.Max - r.Min
}

// IsInside reports whether x lies inside the range.
func (r Range) IsInside(x float32) bool {
	return x >= r.Min && x <= r.Max
}

// IsInsideRange reports whether the entire other range lies inside this one.
func (r Range) IsInsideRange(other Range) bool {
	return r.IsInside(other.Min) && r.IsInside(other.Max)
}

// IsOverlapping reports whether the two ranges share at least one point.
func (r Range) IsOverlapping(other Range) bool {
	return r.IsInside(other.Min) || r.IsInside(other.Max) ||
		other.IsInside(r.Min) || other.IsInside(r.Max)
}
