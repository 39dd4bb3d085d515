package carousel

import (
	"fmt"

	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	DefaultVisibleCount = 3
	DefaultItemWidth    = 320 // 300px card + 20px gap
)

// Direction is a single carousel step.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) Valid() bool {
	return d == Forward || d == Backward
}

// State is the rotation state over a fixed item list. The zero value is an empty carousel.
type State[T any] struct {
	items   []T
	visible int
	index   int
}

// New returns the initial state (index 0) for items, showing visible items at once.
// A visible count below 1 is treated as 1.
func New[T any](items []T, visible int) State[T] {
	if visible < 1 {
		visible = 1
	}
	return State[T]{items: items, visible: visible}
}

func (s State[T]) Index() int        { return s.index }
func (s State[T]) Len() int          { return len(s.items) }
func (s State[T]) VisibleCount() int { return s.visible }
func (s State[T]) Empty() bool       { return len(s.items) == 0 }

// MaxIndex is the last valid index, max(N - visibleCount, 0).
func (s State[T]) MaxIndex() int {
	return max(len(s.items)-s.visible, 0)
}

// Visible returns the items currently in view.
func (s State[T]) Visible() []T {
	if s.Empty() {
		return nil
	}
	end := min(s.index+s.visible, len(s.items))
	return s.items[s.index:end]
}

// Offset maps the index to the horizontal track shift in pixels.
func (s State[T]) Offset(itemWidthWithGap int) int {
	return -s.index * itemWidthWithGap
}

// Frame builds the render instruction for the current state.
func (s State[T]) Frame(itemWidthWithGap int, trigger domain.Trigger) domain.CarouselFrame {
	return domain.CarouselFrame{
		Index:    s.index,
		MaxIndex: s.MaxIndex(),
		Count:    len(s.items),
		Offset:   s.Offset(itemWidthWithGap),
		Trigger:  trigger,
	}
}

// Advance steps the state by d with hard wraparound. The bool reports whether a
// transition happened; an empty carousel is left untouched and needs no redraw.
func Advance[T any](s State[T], d Direction) (State[T], bool, error) {
	if !d.Valid() {
		return s, false, fmt.Errorf("%w: got %d", domain.ErrInvalidDirection, d)
	}
	if s.Empty() {
		return s, false, nil
	}

	maxIndex := s.MaxIndex()
	next := s.index + int(d)
	switch {
	case next < 0:
		next = maxIndex
	case next > maxIndex:
		next = 0
	}

	s.index = next
	return s, true, nil
}
