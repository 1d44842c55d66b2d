package semantic

import "strings"

// QualifiedName is the canonical dotted path of a resolved symbol,
// independent of local import aliasing. `from typing import Never as N`
// resolves `N` to typing.Never.
type QualifiedName struct {
	segments []string
}

func NewQualifiedName(segments ...string) QualifiedName {
	return QualifiedName{segments: segments}
}

func (q QualifiedName) Segments() []string { return q.segments }

func (q QualifiedName) IsEmpty() bool { return len(q.segments) == 0 }

// Head returns the first path segment (the root module).
func (q QualifiedName) Head() string {
	if len(q.segments) == 0 {
		return ""
	}
	return q.segments[0]
}

// Tail returns the final path segment (the symbol name).
func (q QualifiedName) Tail() string {
	if len(q.segments) == 0 {
		return ""
	}
	return q.segments[len(q.segments)-1]
}

// Append returns a new qualified name with extra segments spliced on.
func (q QualifiedName) Append(segments ...string) QualifiedName {
	joined := make([]string, 0, len(q.segments)+len(segments))
	joined = append(joined, q.segments...)
	joined = append(joined, segments...)
	return QualifiedName{segments: joined}
}

// Matches reports whether the qualified name is exactly the given path.
func (q QualifiedName) Matches(segments ...string) bool {
	if len(q.segments) != len(segments) {
		return false
	}
	for i, seg := range segments {
		if q.segments[i] != seg {
			return false
		}
	}
	return true
}

func (q QualifiedName) String() string {
	return strings.Join(q.segments, ".")
}
