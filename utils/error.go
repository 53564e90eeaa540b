package utils

import "errors"

var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
)

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
