package fixer

import (
	"sort"

	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// Apply performs one rewrite pass: it filters diagnostics to those carrying a
// fix at or above the applicability threshold, withholds every fix involved
// in a range conflict, and splices the survivors into src in position order.
// A fix is atomic: either all of its edits apply or none do.
func Apply(src []byte, diagnostics []tt.Diagnostic, threshold tt.Applicability) (out []byte, applied, skipped int) {
	type candidate struct {
		fix      *tt.Fix
		conflict bool
	}

	var candidates []candidate
	for _, d := range diagnostics {
		if d.Fix == nil {
			continue
		}
		if d.Fix.Applicability < threshold {
			skipped++
			continue
		}
		candidates = append(candidates, candidate{fix: d.Fix})
	}

	// Conservative conflict policy: when two fixes propose overlapping
	// ranges, neither is applied this pass. A fix whose own edits overlap is
	// withheld the same way.
	for i := range candidates {
		if fixSelfConflicts(candidates[i].fix) {
			candidates[i].conflict = true
		}
	}
	for i := range candidates {
		for j := i + 1; j < len(candidates); j++ {
			if fixesConflict(candidates[i].fix, candidates[j].fix) {
				candidates[i].conflict = true
				candidates[j].conflict = true
			}
		}
	}

	var edits []tt.Edit
	seen := make(map[tt.Edit]bool)
	for _, cand := range candidates {
		if cand.conflict {
			skipped++
			continue
		}
		for _, edit := range cand.fix.Edits {
			if !seen[edit] {
				seen[edit] = true
				edits = append(edits, edit)
			}
		}
		applied++
	}
	if len(edits) == 0 {
		return src, 0, skipped
	}

	// apply back-to-front so earlier offsets stay valid
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Range.Start > edits[j].Range.Start
	})
	out = make([]byte, len(src))
	copy(out, src)
	for _, edit := range edits {
		start, end := clamp(edit.Range, len(out))
		rewritten := make([]byte, 0, len(out)-(end-start)+len(edit.NewText))
		rewritten = append(rewritten, out[:start]...)
		rewritten = append(rewritten, edit.NewText...)
		rewritten = append(rewritten, out[end:]...)
		out = rewritten
	}
	return out, applied, skipped
}

func clamp(r syntax.TextRange, size int) (int, int) {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > size {
		end = size
	}
	if start > end {
		start = end
	}
	return start, end
}

func fixSelfConflicts(fix *tt.Fix) bool {
	for i := range fix.Edits {
		for j := i + 1; j < len(fix.Edits); j++ {
			if fix.Edits[i].Range.Intersects(fix.Edits[j].Range) {
				return true
			}
		}
	}
	return false
}

// fixesConflict reports whether two fixes propose overlapping ranges.
// Fixes with identical edit sets are the same rewrite proposed twice, not a
// conflict; they are deduplicated at collection time.
func fixesConflict(a, b *tt.Fix) bool {
	if equalEdits(a.Edits, b.Edits) {
		return false
	}
	for _, ea := range a.Edits {
		for _, eb := range b.Edits {
			if ea.Range.Intersects(eb.Range) {
				return true
			}
		}
	}
	return false
}

func equalEdits(a, b []tt.Edit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
