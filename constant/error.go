package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrEmailExists
	ErrInvalidCredentials
	ErrPropertyUnavailable
	ErrPropertySold
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthorize:         "unauthorize request",
	ErrForbidden:           "action not allowed for this role",
	ErrEmailExists:         "email already registered",
	ErrInvalidCredentials:  "invalid email or password",
	ErrPropertyUnavailable: "property already locked or sold",
	ErrPropertySold:        "property already sold",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrUnauthorize:         http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrEmailExists:         http.StatusConflict,
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrPropertyUnavailable: http.StatusConflict,
	ErrPropertySold:        http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthorize:         "0004",
	ErrForbidden:           "0005",
	ErrEmailExists:         "0006",
	ErrInvalidCredentials:  "0007",
	ErrPropertyUnavailable: "0008",
	ErrPropertySold:        "0009",
}
