package types

import (
	"fmt"

	"github.com/typelint/typelint/internal/syntax"
)

// Severity is the reporting level of a rule, configurable per rule.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// UnmarshalYAML accepts the lowercase severity names used in config files.
func (s *Severity) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

func (s Severity) MarshalYAML() (any, error) {
	switch s {
	case SeverityError:
		return "error", nil
	case SeverityWarning:
		return "warning", nil
	case SeverityInfo:
		return "info", nil
	default:
		return "off", nil
	}
}

// ConfigRule is the per-rule block of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Position is a 1-based line/column location with its byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Applicability classifies whether a fix may be applied without review.
// Ordering matters: a threshold admits every level at or above it.
type Applicability int

const (
	// ApplicabilityUnsafe fixes change behavior or are speculative.
	ApplicabilityUnsafe Applicability = iota
	// ApplicabilitySometimes fixes depend on surrounding context; the rule
	// judged this occurrence acceptable but review is advised.
	ApplicabilitySometimes
	// ApplicabilitySafe fixes are always machine-applicable.
	ApplicabilitySafe
)

func (a Applicability) String() string {
	switch a {
	case ApplicabilitySafe:
		return "safe"
	case ApplicabilitySometimes:
		return "sometimes"
	default:
		return "unsafe"
	}
}

// ParseApplicability converts a CLI/config spelling to an Applicability.
func ParseApplicability(s string) (Applicability, error) {
	switch s {
	case "safe":
		return ApplicabilitySafe, nil
	case "sometimes":
		return ApplicabilitySometimes, nil
	case "unsafe":
		return ApplicabilityUnsafe, nil
	}
	return ApplicabilitySafe, fmt.Errorf("unknown fix level %q", s)
}

// Edit is a single textual replacement: the range is replaced with NewText.
// An empty range is an insertion; empty NewText is a deletion.
type Edit struct {
	Range   syntax.TextRange `json:"range"`
	NewText string           `json:"new_text"`
}

// Replacement builds an edit that swaps the text in rng for text.
func Replacement(rng syntax.TextRange, text string) Edit {
	return Edit{Range: rng, NewText: text}
}

// Deletion builds an edit that removes the text in rng.
func Deletion(rng syntax.TextRange) Edit {
	return Edit{Range: rng}
}

// Insertion builds an edit that inserts text at offset.
func Insertion(offset int, text string) Edit {
	return Edit{Range: syntax.NewRange(offset, offset), NewText: text}
}

// Fix is an ordered sequence of edits with a safety classification. The
// classification is decided per occurrence when the diagnostic is emitted,
// never cached per rule.
type Fix struct {
	Applicability Applicability `json:"applicability"`
	Message       string        `json:"message,omitempty"`
	Edits         []Edit        `json:"edits"`
}

// SafeFix builds a fix that is always machine-applicable.
func SafeFix(message string, edits ...Edit) *Fix {
	return &Fix{Applicability: ApplicabilitySafe, Message: message, Edits: edits}
}

// SometimesFix builds a fix whose safety depends on the occurrence.
func SometimesFix(message string, edits ...Edit) *Fix {
	return &Fix{Applicability: ApplicabilitySometimes, Message: message, Edits: edits}
}

// UnsafeFix builds a fix that must not be applied without review.
func UnsafeFix(message string, edits ...Edit) *Fix {
	return &Fix{Applicability: ApplicabilityUnsafe, Message: message, Edits: edits}
}

// Diagnostic is a located, rule-attributed finding, optionally carrying a
// proposed fix. Diagnostics are immutable once collected.
type Diagnostic struct {
	Rule     string           `json:"rule"`
	Severity Severity         `json:"severity"`
	Filename string           `json:"filename"`
	Range    syntax.TextRange `json:"-"`
	Start    Position         `json:"start"`
	End      Position         `json:"end"`
	Message  string           `json:"message"`
	Note     string           `json:"note,omitempty"`
	Fix      *Fix             `json:"fix,omitempty"`
}

// HasFix reports whether a fix with at least the given applicability is
// attached.
func (d Diagnostic) HasFix(threshold Applicability) bool {
	return d.Fix != nil && d.Fix.Applicability >= threshold
}
