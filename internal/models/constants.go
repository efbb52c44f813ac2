package models

// Built-in spending categories. CategoryOther is the universal fallback and is
// always part of the vocabulary.
const (
	CategoryFood          = "Food"
	CategoryShopping      = "Shopping"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills"
	CategoryOther         = "Other"
)

// Limits applied when a structured expense is assembled.
const (
	DefaultMaxExpenseAmount = 100000
	MaxMerchantLength       = 100
	MaxRawTextLength        = 255
)

// YearMonthLayout is the key format of monthly series entries.
const YearMonthLayout = "2006-01"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
