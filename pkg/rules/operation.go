package rules

// LineOperationKind is the kind of a token-level line operation.
type LineOperationKind uint8

const (
	// PreserveLines applies only when line breaks already exist.
	PreserveLines LineOperationKind = iota
	// ForceLines always applies.
	ForceLines
	// ForceLinesIfOnSingleLine applies when both tokens were on one line.
	ForceLinesIfOnSingleLine
)

// LineOperation is a caller-declared line break requirement between two tokens.
type LineOperation struct {
	Kind  LineOperationKind
	Lines int
}

// SpaceOperationKind is the kind of a token-level space operation.
type SpaceOperationKind uint8

const (
	PreserveSpaces SpaceOperationKind = iota
	ForceSpacesOperation
	// DefaultSpacesIfOnSingleLine is the conventional spacing between two
	// tokens on one line.
	DefaultSpacesIfOnSingleLine
)

// SpaceOperation is a caller-declared spacing requirement between two tokens.
type SpaceOperation struct {
	Kind   SpaceOperationKind
	Spaces int
}

// IsConventionalSingleSpace reports whether the operation merely asks for the
// usual single space on one line.
func (op SpaceOperation) IsConventionalSingleSpace() bool {
	return op.Kind == DefaultSpacesIfOnSingleLine && op.Spaces == 1
}
