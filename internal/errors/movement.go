package errors

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrBelowMinimum = &DomainError{
		Code:    "BELOW_MINIMUM",
		Message: "amount is below the minimum for this movement kind",
	}
	ErrDailyCapExceeded = &DomainError{
		Code:    "DAILY_CAP_EXCEEDED",
		Message: "daily send cap exceeded",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient wallet balance",
	}
	ErrRecipientNotFound = &DomainError{
		Code:    "RECIPIENT_NOT_FOUND",
		Message: "recipient not found",
	}
	ErrSelfTransfer = &DomainError{
		Code:    "SELF_TRANSFER",
		Message: "cannot transfer to your own wallet",
	}
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
	}
	ErrAccountLocked = &DomainError{
		Code:    "ACCOUNT_LOCKED",
		Message: "account is temporarily locked",
	}
	ErrStorageConflict = &DomainError{
		Code:    "STORAGE_CONFLICT",
		Message: "concurrent update conflict, retry the operation",
	}
)
