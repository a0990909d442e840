package api

// SQLState is a 5-character standardized error-class code: the first two
// characters are the class, the next three the subclass.
type SQLState string

const (
	StateSuccess SQLState = "00000"

	// Warning (01xxx)
	StateStringTruncated SQLState = "01004"

	// Invalid cursor state (24xxx)
	StateInvalidCursorState SQLState = "24000"

	// Connection exception (08xxx)
	StateConnectionFailure  SQLState = "08001"
	StateConnectionNotOpen  SQLState = "08003"
	StateCommLinkFailure    SQLState = "08S01"

	// Invalid descriptor index (07xxx)
	StateInvalidDescriptorIndex SQLState = "07009"

	// Data exception (22xxx)
	StateDataException      SQLState = "22000"
	StateNumericOutOfRange  SQLState = "22003"
	StateInvalidDatetime    SQLState = "22007"

	// Integrity constraint violation (23xxx)
	StateIntegrityConstraintViolation SQLState = "23000"

	// Syntax / access rule violation (42xxx)
	StateSyntaxError        SQLState = "42000"
	StateBaseTableNotFound  SQLState = "42S02"
	StateColumnNotFound     SQLState = "42S22"

	// CLI-specific condition (HYxxx)
	StateGeneralError          SQLState = "HY000"
	StateFunctionSequenceError SQLState = "HY010"
	StateOptionalFeatureNotImplemented SQLState = "HYC00"
	StateInvalidAttrValue      SQLState = "HY024"
)
