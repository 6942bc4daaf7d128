package values

// EitherValue represents a union type that holds exactly one of a Left or Right value.
// It provides multiple access patterns for different use cases:
//
// Direct field access (Left, Right) - for setting values
// Pointer access (GetLeft, GetRight) - for nil-safe pointer retrieval
// Value access (LeftValue, RightValue) - for nil-safe value retrieval with zero value fallback
// Match - for handling both cases exhaustively
type EitherValue[L any, R any] struct {
	// Left holds the left-side value. Use directly when setting values in the EitherValue.
	Left *L
	// Right holds the right-side value. Use directly when setting values in the EitherValue.
	Right *R
}

// NewLeft creates an EitherValue holding the left case.
func NewLeft[L any, R any](l L) *EitherValue[L, R] {
	return &EitherValue[L, R]{Left: &l}
}

// NewRight creates an EitherValue holding the right case.
func NewRight[L any, R any](r R) *EitherValue[L, R] {
	return &EitherValue[L, R]{Right: &r}
}

// IsLeft returns true if the EitherValue contains a left value.
func (e *EitherValue[L, R]) IsLeft() bool {
	if e == nil {
		return false
	}

	return e.Left != nil
}

// IsRight returns true if the EitherValue contains a right value.
func (e *EitherValue[L, R]) IsRight() bool {
	if e == nil {
		return false
	}

	return e.Left == nil && e.Right != nil
}

// IsValid reports whether exactly one side is populated.
func (e *EitherValue[L, R]) IsValid() bool {
	if e == nil {
		return false
	}

	return (e.Left == nil) != (e.Right == nil)
}

// GetLeft returns a pointer to the left value in a nil-safe way.
func (e *EitherValue[L, R]) GetLeft() *L {
	if e == nil {
		return nil
	}

	return e.Left
}

// LeftValue returns the left value directly, with zero value fallback for safety.
// Should typically be used in conjunction with IsLeft() to verify the value is valid.
func (e *EitherValue[L, R]) LeftValue() L {
	if e == nil || e.Left == nil {
		var zero L
		return zero
	}

	return *e.Left
}

// GetRight returns a pointer to the right value in a nil-safe way.
func (e *EitherValue[L, R]) GetRight() *R {
	if e == nil {
		return nil
	}

	return e.Right
}

// RightValue returns the right value directly, with zero value fallback for safety.
// Should typically be used in conjunction with IsRight() to verify the value is valid.
func (e *EitherValue[L, R]) RightValue() R {
	if e == nil || e.Right == nil {
		var zero R
		return zero
	}

	return *e.Right
}

// Match calls onLeft or onRight depending on the active case and returns its result.
func Match[L any, R any, T any](e *EitherValue[L, R], onLeft func(*L) T, onRight func(*R) T) T {
	if e.IsLeft() {
		return onLeft(e.Left)
	}
	return onRight(e.GetRight())
}

// MapRight applies f to the right case, leaving a left value untouched.
func MapRight[L any, R any, R2 any](e *EitherValue[L, R], f func(R) R2) *EitherValue[L, R2] {
	if e == nil {
		return nil
	}

	if e.IsLeft() {
		l := *e.Left
		return &EitherValue[L, R2]{Left: &l}
	}

	if e.Right == nil {
		return &EitherValue[L, R2]{}
	}

	r := f(*e.Right)
	return &EitherValue[L, R2]{Right: &r}
}

// IsEqualFunc compares two EitherValues, using eqLeft or eqRight on the active case.
func (e *EitherValue[L, R]) IsEqualFunc(other *EitherValue[L, R], eqLeft func(a, b *L) bool, eqRight func(a, b *R) bool) bool {
	if e == nil && other == nil {
		return true
	}
	if e == nil || other == nil {
		return false
	}

	if e.IsLeft() != other.IsLeft() {
		return false
	}

	if e.IsLeft() {
		return eqLeft(e.Left, other.Left)
	}
	return eqRight(e.Right, other.Right)
}
