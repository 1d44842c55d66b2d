package fixer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// DefaultMaxPasses bounds the fixed-point loop. Applying one fix can make a
// previously irrelevant rule applicable, so the file is re-checked after
// every pass; the cap turns a fix oscillation into a reported stall instead
// of an unbounded loop.
const DefaultMaxPasses = 10

// CheckFunc re-analyzes a source buffer between passes. It is the lint
// engine's RunSource, injected to keep this package free of engine wiring.
type CheckFunc func(src []byte) ([]tt.Diagnostic, error)

// Result summarizes one file's fixed-point run.
type Result struct {
	Applied int
	Skipped int
	Passes  int
	// Stalled is set when the pass cap was reached with fixes still being
	// applied, or when an applied pass produced unparseable text. The
	// returned source is the last good state.
	Stalled bool
}

type Fixer struct {
	DryRun    bool
	Threshold tt.Applicability
	MaxPasses int
}

func New(dryRun bool, threshold tt.Applicability) *Fixer {
	return &Fixer{
		DryRun:    dryRun,
		Threshold: threshold,
		MaxPasses: DefaultMaxPasses,
	}
}

// FixSource drives apply-then-recheck cycles until no further edits are
// proposed or the pass cap is hit. The returned buffer always re-parses.
func (f *Fixer) FixSource(src []byte, check CheckFunc) ([]byte, Result, error) {
	var res Result
	current := src

	for res.Passes < f.MaxPasses {
		diagnostics, err := check(current)
		if err != nil {
			if res.Passes == 0 {
				return src, res, err
			}
			// a previous pass produced text the parser rejects; keep the
			// last state that analyzed cleanly
			res.Stalled = true
			return current, res, nil
		}

		next, applied, skipped := Apply(current, diagnostics, f.Threshold)
		res.Skipped = skipped
		if applied == 0 {
			return current, res, nil
		}
		if _, err := syntax.Parse(next); err != nil {
			// an applied edit broke the file; withhold the whole pass
			res.Stalled = true
			return current, res, nil
		}
		res.Applied += applied
		res.Passes++
		current = next
	}

	// cap reached with edits still flowing
	if diagnostics, err := check(current); err == nil {
		if _, applied, _ := Apply(current, diagnostics, f.Threshold); applied > 0 {
			res.Stalled = true
		}
	}
	return current, res, nil
}

// FixFile runs the fixed-point loop over one file on disk and writes the
// result back, unless in dry-run mode.
func (f *Fixer) FixFile(filename string, check CheckFunc) (Result, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file: %w", err)
	}

	fixed, res, err := f.FixSource(content, check)
	if err != nil {
		return res, err
	}

	if f.DryRun {
		if !bytes.Equal(content, fixed) {
			fmt.Printf("Would fix %s (%d edits in %d passes)\n", filename, res.Applied, res.Passes)
		}
		return res, nil
	}

	if !bytes.Equal(content, fixed) {
		if err := os.WriteFile(filename, fixed, 0o644); err != nil {
			return res, fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("Fixed %d issues in %s\n", res.Applied, filename)
	}
	return res, nil
}
