package source

import (
	"fmt"
)

// Span is a half-open byte range inside one source file.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover widens the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Loc names a region of a source file. The zero Loc is "unknown".
type Loc struct {
	Path string
	Span Span
}

func (l Loc) IsKnown() bool {
	return l.Path != ""
}

func (l Loc) String() string {
	if !l.IsKnown() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%s", l.Path, l.Span)
}
