package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST           ErrCode = "REQUEST_FAILED"
	BAD_REQUEST              ErrCode = "FAILED_TO_DECODE"
	VALIDATION_FAILED        ErrCode = "VALIDATION_FAILED"
	NOT_FOUND                ErrCode = "NOT_FOUND"
	LOCKED                   ErrCode = "LOCKED"
	CONFLICT                 ErrCode = "CONFLICT"
	CAPACITY_EXCEEDED        ErrCode = "CAPACITY_EXCEEDED"
	GENDER_CAPACITY_EXCEEDED ErrCode = "GENDER_CAPACITY_EXCEEDED"
	INSTRUCTOR_UNAVAILABLE   ErrCode = "INSTRUCTOR_UNAVAILABLE"
)

var (
	ErrBadRequest             = errors.New("bad request")
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("resource not found")
	ErrLocked                 = errors.New("resource is locked")
	ErrConflict               = errors.New("conflict")
	ErrCapacityExceeded       = errors.New("group is at full capacity")
	ErrGenderCapacityExceeded = errors.New("no more spaces available for this gender")
	ErrInstructorUnavailable  = errors.New("instructor is not available")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is required", err.Field()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param()))
		case "email":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be a valid email", err.Field()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is invalid", err.Field()))
		}
	}

	return Response{
		ResponseError: ResponseError{
			Code:    string(VALIDATION_FAILED),
			Message: strings.Join(errMsg, ", "),
		},
	}
}
