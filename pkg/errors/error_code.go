package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeInvalidConfiguration ErrorCode = 100
	ErrCodeInvalidStyle         ErrorCode = 101
	ErrCodeInvalidCapital       ErrorCode = 102
	ErrCodeInvalidWindow        ErrorCode = 103
	ErrCodeInvalidDateRange     ErrorCode = 104

	// Data errors (200-299)
	ErrCodeEmptyDataset    ErrorCode = 200
	ErrCodeMissingField    ErrorCode = 201
	ErrCodeMalformedSeries ErrorCode = 202
	ErrCodeQueryFailed     ErrorCode = 203
	ErrCodeDataNotFound    ErrorCode = 204

	// Strategy errors (300-399)
	ErrCodeUnknownStrategy       ErrorCode = 300
	ErrCodeStrategyAlreadyExists ErrorCode = 301
	ErrCodeSignalGeneration      ErrorCode = 302

	// Simulation errors (400-499)
	ErrCodeInvalidTrade     ErrorCode = 400
	ErrCodeTradeLogFailed   ErrorCode = 401
	ErrCodeSimulationFailed ErrorCode = 402

	// Market data errors (500-599)
	ErrCodeMarketDataFetchFailed ErrorCode = 500
	ErrCodeMarketDataWriteFailed ErrorCode = 501
	ErrCodeInvalidProvider       ErrorCode = 502
)
