package util

import (
	"errors"
	"net/http"

	"smart_quiz_backend/internal/model"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUserNotFound       = errors.New("user not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrEmailRegistered    = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAdmin       = errors.New("invalid admin credentials")
	ErrInvalidLanguage    = errors.New("invalid language, must be: uz, ru, en (or uzb, rus, eng)")
	ErrInvalidMode        = errors.New("mode must be either 'basic' or 'premium'")
	ErrInvalidOptionIndex = errors.New("selected option index is out of range")
	ErrInvalidImage       = errors.New("only image files up to 5MB are allowed")
	ErrTokenMissing       = errors.New("no token provided")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrPermissionDenied   = errors.New("access denied")
)

// 稳定的错误类型，客户端据此判断
const (
	KindValidation   = "validation_error"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindUnauthorized = "unauthorized"
	KindTokenMissing = "token_missing"
	KindTokenInvalid = "token_invalid"
	KindTokenExpired = "token_expired"
	KindForbidden    = "forbidden"
	KindInternal     = "internal_error"
)

// ErrorKind 把错误归类为 (kind, HTTP 状态码)
func ErrorKind(err error) (string, int) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidLanguage),
		errors.Is(err, ErrInvalidMode),
		errors.Is(err, ErrInvalidOptionIndex),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, model.ErrOptionCount),
		errors.Is(err, model.ErrCorrectOptionCount),
		errors.Is(err, model.ErrEmptyOptionText),
		errors.Is(err, model.ErrEmptyQuestionText):
		return KindValidation, http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrQuestionNotFound):
		return KindNotFound, http.StatusNotFound
	case errors.Is(err, ErrEmailRegistered):
		return KindConflict, http.StatusConflict
	case errors.Is(err, ErrTokenMissing):
		return KindTokenMissing, http.StatusUnauthorized
	case errors.Is(err, ErrTokenExpired):
		return KindTokenExpired, http.StatusUnauthorized
	case errors.Is(err, ErrTokenInvalid):
		return KindTokenInvalid, http.StatusUnauthorized
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidAdmin):
		return KindUnauthorized, http.StatusUnauthorized
	case errors.Is(err, ErrPermissionDenied):
		return KindForbidden, http.StatusForbidden
	}
	return KindInternal, http.StatusInternalServerError
}
