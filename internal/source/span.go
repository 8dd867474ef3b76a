package source

import "fmt"

// Span is a half-open range [Start, End) bound to a SourceId. Every token
// and every AST node carries a Span. The lexer fills Start and End with
// rune offsets into the source text, not byte offsets; the two agree only
// for ASCII source.
type Span struct {
	Source SourceId
	Start  int
	End    int
}

// NewSpan constructs a Span from a SourceId and an offset range.
func NewSpan(src SourceId, start, end int) Span {
	return Span{Source: src, Start: start, End: end}
}

// Range returns the (start, end) pair of the span.
func (s Span) Range() (int, int) { return s.Start, s.End }

// Len returns the number of offsets (runes, for lexer spans) the span covers.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Union returns the smallest span covering both s and other. Panics if
// the two spans are not bound to the same SourceId, mirroring the
// invariant in spec.md that union requires identical SourceId.
func (s Span) Union(other Span) Span {
	if s.Source != other.Source {
		panic(fmt.Sprintf("source: cannot union spans from different sources (%d vs %d)", s.Source, other.Source))
	}
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Source: s.Source, Start: start, End: end}
}

// Contains reports whether inner lies wholly within s (same source,
// Start >= s.Start, End <= s.End).
func (s Span) Contains(inner Span) bool {
	return s.Source == inner.Source && inner.Start >= s.Start && inner.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Source, s.Start, s.End)
}
