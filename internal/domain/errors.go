package domain

import (
	"errors"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"classconnect/pkg/errcodes"
)

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.NotFound:            http.StatusNotFound,
	errcodes.CourseNotFound:      http.StatusNotFound,
	errcodes.ReviewNotFound:      http.StatusNotFound,
	errcodes.Forbidden:           http.StatusForbidden,
	errcodes.Unauthorized:        http.StatusUnauthorized,
	errcodes.ValidationError:     http.StatusBadRequest,
	errcodes.InvalidReview:       http.StatusBadRequest,
	errcodes.InvalidCourseID:     http.StatusBadRequest,
	errcodes.InvalidCourseFilter: http.StatusBadRequest,
	errcodes.InvalidReviewID:     http.StatusBadRequest,
	errcodes.InvalidUserID:       http.StatusBadRequest,
	errcodes.ReviewAlreadyExists: http.StatusConflict,
}

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// ErrorCode возвращает код ошибки для ответа клиенту.
func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

// Description возвращает сообщение без технических деталей причины.
func (e *AppError) Description() string {
	return e.Message
}

// HTTPStatus сопоставляет код ошибки со статусом ответа.
func (e *AppError) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// IsAppError проверяет, является ли ошибка доменной.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}
