package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidConfig risk configuration violates an invariant
	ErrInvalidConfig ErrorCode = 100001

	// ErrLoanTooSmall loan amount below the configured minimum
	ErrLoanTooSmall ErrorCode = 100100
	// ErrDurationTooLong duration above max loan duration
	ErrDurationTooLong ErrorCode = 100101
	// ErrInterestRateTooLow interest rate below min interest rate
	ErrInterestRateTooLow ErrorCode = 100102
	// ErrInvalidAmount non positive or fractional amount
	ErrInvalidAmount ErrorCode = 100103

	// ErrUnknownToken token has no registered price source
	ErrUnknownToken ErrorCode = 100200
	// ErrStaleOrInvalidQuote quote absent, too old or non positive
	ErrStaleOrInvalidQuote ErrorCode = 100201

	// ErrNotEnoughCollateral admission failed
	ErrNotEnoughCollateral ErrorCode = 100300
	// ErrNotLiquidatable loan is healthy
	ErrNotLiquidatable ErrorCode = 100301
	// ErrNotOverdue loan duration not exceeded yet
	ErrNotOverdue ErrorCode = 100302

	// ErrInvalidState operation not valid for the loan status
	ErrInvalidState ErrorCode = 100400
	// ErrNotAuthorized caller is not the entitled actor
	ErrNotAuthorized ErrorCode = 100401
	// ErrLoanNotFound no loan
	ErrLoanNotFound ErrorCode = 100402
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:             "Unknown",
	ErrInvalidConfig:       "InvalidConfig",
	ErrLoanTooSmall:        "LoanTooSmall",
	ErrDurationTooLong:     "DurationTooLong",
	ErrInterestRateTooLow:  "InterestRateTooLow",
	ErrInvalidAmount:       "InvalidAmount",
	ErrUnknownToken:        "UnknownToken",
	ErrStaleOrInvalidQuote: "StaleOrInvalidQuote",
	ErrNotEnoughCollateral: "NotEnoughCollateral",
	ErrNotLiquidatable:     "NotLiquidatable",
	ErrNotOverdue:          "NotOverdue",
	ErrInvalidState:        "InvalidState",
	ErrNotAuthorized:       "NotAuthorized",
	ErrLoanNotFound:        "LoanNotFound",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

// Message readable name of the code
func (e ErrorCode) Message() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return errorMessages[ErrUnknown]
}

func (e ErrorCode) Error() string {
	return e.Message()
}
