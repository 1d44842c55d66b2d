package syntax

import "sort"

// Locator slices the original source buffer by range and maps byte offsets to
// line/column positions. The mapping is for user-facing reporting only.
type Locator struct {
	src        []byte
	lineStarts []int // byte offset of each line start, lineStarts[0] == 0
}

func NewLocator(src []byte) *Locator {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{src: src, lineStarts: starts}
}

// Source returns the full original buffer.
func (l *Locator) Source() []byte { return l.src }

// Slice returns the verbatim source text covered by r, preserving the
// original formatting and any comments inside the subrange.
func (l *Locator) Slice(r TextRange) string {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > len(l.src) {
		end = len(l.src)
	}
	if start > end {
		return ""
	}
	return string(l.src[start:end])
}

// LineCol converts a byte offset to 1-based line and column numbers.
func (l *Locator) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.src) {
		offset = len(l.src)
	}
	idx := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	return idx + 1, offset - l.lineStarts[idx] + 1
}

// Line returns the full text of a 1-based line without its trailing newline.
func (l *Locator) Line(line int) string {
	if line < 1 || line > len(l.lineStarts) {
		return ""
	}
	start := l.lineStarts[line-1]
	end := len(l.src)
	if line < len(l.lineStarts) {
		end = l.lineStarts[line] - 1
	}
	return string(l.src[start:end])
}

// LineCount returns the number of lines in the buffer.
func (l *Locator) LineCount() int { return len(l.lineStarts) }
