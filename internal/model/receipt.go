package model

// MaxItemNameLength caps normalized item names.
const MaxItemNameLength = 200

// RawCandidateItem is one extracted item line before normalization.
// RawQuantity and RawPrice hold the captured text exactly as it appeared;
// LineOffset is the zero-based position of the line in the email body.
type RawCandidateItem struct {
	RawText     string
	RawQuantity string
	RawPrice    string
	RawUnit     string
	LineOffset  int
	Merged      bool // built from a dangling-name line plus a price-only line
}

// ParsedReceiptItem is a normalized purchased item. Quantity is always
// positive; Price is nil when the source line carried no usable price.
type ParsedReceiptItem struct {
	Name           string
	Quantity       float64
	Unit           string
	Price          *float64
	Category       string
	ItemConfidence float64
	Notes          []string // audit notes (merges, defaults applied)
	LineOffset     int

	// Normalization flags consumed by the confidence scorer.
	QuantityDefaulted bool
	CategoryDefaulted bool
}

// ParsedReceipt is the engine's output: one receipt per parse invocation,
// immutable once handed back to the caller. Items preserve the order they
// first appeared in the source body.
type ParsedReceipt struct {
	Store             StoreIdentity
	OrderID           string
	Items             []ParsedReceiptItem
	OverallConfidence float64
	ParsingErrors     []ParseError
	SkippedLines      int            // body lines no pattern recognized
	RawEmail          *IncomingEmail // audit reference only, not owned
}

// ImportDecision is the trust outcome derived from a parsed receipt.
type ImportDecision string

// Import decision constants.
const (
	DecisionAutoProcess  ImportDecision = "AUTO_PROCESS"
	DecisionManualReview ImportDecision = "MANUAL_REVIEW"
)
