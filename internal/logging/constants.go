package logging

// Standardized field names for structured logging.
// These constants keep log output consistent so it can be filtered and analyzed.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldCategory  = "category"
	FieldStrategy  = "strategy"
	FieldModel     = "model"
	FieldAmount    = "amount"
	FieldMerchant  = "merchant"
	FieldMonths    = "months"
	FieldPoints    = "points"
	FieldOutcome   = "outcome"
	FieldReason    = "reason"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldInputFile = "input_file"
)
