package model

import "fmt"

// ParseErrorKind classifies a recorded parsing error.
type ParseErrorKind string

// Parse error kinds.
const (
	// ErrDetectionAmbiguous means store detection matched nothing and
	// fell back to Generic. Non-fatal.
	ErrDetectionAmbiguous ParseErrorKind = "DETECTION_AMBIGUOUS"
	// ErrGrammarMatchFailure means a grammar produced zero items.
	// Fatal for the parse; forces manual review.
	ErrGrammarMatchFailure ParseErrorKind = "GRAMMAR_MATCH_FAILURE"
	// ErrNormalization means one candidate failed to normalize and was
	// dropped. The rest of the receipt survives.
	ErrNormalization ParseErrorKind = "NORMALIZATION_ERROR"
	// ErrEmptyBody means the email body was empty or whitespace. Fatal.
	ErrEmptyBody ParseErrorKind = "EMPTY_BODY"
)

// ParseError is a recorded error descriptor attached to a ParsedReceipt.
// The review UI renders these verbatim so a reviewer can see why
// confidence was low. LineOffset is -1 for document-level errors.
type ParseError struct {
	Kind       ParseErrorKind
	Detail     string
	LineOffset int
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.LineOffset >= 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.LineOffset, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Fatal reports whether this error kind aborts the parse and forces
// manual review on its own.
func (e ParseError) Fatal() bool {
	return e.Kind == ErrGrammarMatchFailure || e.Kind == ErrEmptyBody
}
