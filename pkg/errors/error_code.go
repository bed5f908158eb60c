package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199): record-level bar validation failures.
	// These reject a single record and are never fatal.
	ErrCodeMissingSymbol  ErrorCode = 100
	ErrCodeMissingDate    ErrorCode = 101
	ErrCodeFutureDate     ErrorCode = 102
	ErrCodeInvalidPrice   ErrorCode = 103
	ErrCodePriceRelation  ErrorCode = 104
	ErrCodeInvalidVolume  ErrorCode = 105
	ErrCodeUnorderedData  ErrorCode = 106
	ErrCodeInvalidSymbol  ErrorCode = 107
	ErrCodeEmptySeries    ErrorCode = 108
	ErrCodeDuplicateDate  ErrorCode = 109
	ErrCodeInvalidRequest ErrorCode = 110

	// Configuration errors (200-299): fatal at startup, before any symbol
	// is processed.
	ErrCodeMissingCredential    ErrorCode = 200
	ErrCodeInvalidConfiguration ErrorCode = 201
	ErrCodeInvalidPeriod        ErrorCode = 202
	ErrCodeInvalidThreshold     ErrorCode = 203
	ErrCodeInvalidOutputSize    ErrorCode = 204
	ErrCodeInvalidProvider      ErrorCode = 205
	ErrCodeIncompatibleVersion  ErrorCode = 206
	ErrCodeInvalidChunkSize     ErrorCode = 207
	ErrCodeStrategyNotFound     ErrorCode = 208

	// Quote source errors (300-399).
	ErrCodeRateLimitExceeded ErrorCode = 300
	ErrCodeTransportFailure  ErrorCode = 301
	ErrCodeMalformedPayload  ErrorCode = 302

	// Persistence errors (400-499): abort the current symbol's write and
	// surface as a run failure. Nothing is rolled back or retried.
	ErrCodeStoreWriteFailed ErrorCode = 400
	ErrCodeStoreQueryFailed ErrorCode = 401
	ErrCodeStoreInitFailed  ErrorCode = 402
	ErrCodeStoreClosed      ErrorCode = 403

	// Strategy errors (500-599).
	ErrCodeInsufficientData  ErrorCode = 500
	ErrCodeStrategyRuntime   ErrorCode = 501
	ErrCodeSignalGeneration  ErrorCode = 502
	ErrCodeStrategyDataOrder ErrorCode = 503

	// Run errors (600-699).
	ErrCodeRunNotFound ErrorCode = 600
	ErrCodeRunFailed   ErrorCode = 601
)

// IsValidation reports whether the error carries a record-validation code.
func IsValidation(err error) bool {
	code := GetCode(err)
	return code >= 100 && code < 200
}

// IsConfiguration reports whether the error carries a configuration code.
// Configuration errors are fatal at startup.
func IsConfiguration(err error) bool {
	code := GetCode(err)
	return code >= 200 && code < 300
}

// IsRateLimit reports whether the error is a provider rate-limit rejection.
// Rate-limit errors are fatal for the current run and never retried.
func IsRateLimit(err error) bool {
	return HasCode(err, ErrCodeRateLimitExceeded)
}

// IsTransport reports whether the error is a transport failure. The current
// symbol is skipped and the run continues.
func IsTransport(err error) bool {
	return HasCode(err, ErrCodeTransportFailure)
}

// IsPersistence reports whether the error carries a store code. Persistence
// failures surface as run failures without rollback of prior symbols.
func IsPersistence(err error) bool {
	code := GetCode(err)
	return code >= 400 && code < 500
}
