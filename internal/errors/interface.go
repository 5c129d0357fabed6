package errors

// ErrorCode identifies a class of failure. Codes are logged as error_code.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Error is a coded error with an optional cause and payload
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
	// Is matches any Error carrying the same code
	Is(target error) bool
}

// Factory builds coded errors
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
