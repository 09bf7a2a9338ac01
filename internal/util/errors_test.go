package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smart_quiz_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err    error
		kind   string
		status int
	}{
		{fmt.Errorf("%w: bad", ErrValidation), KindValidation, http.StatusBadRequest},
		{fmt.Errorf("%w, got 3", model.ErrOptionCount), KindValidation, http.StatusBadRequest},
		{model.ErrCorrectOptionCount, KindValidation, http.StatusBadRequest},
		{ErrInvalidOptionIndex, KindValidation, http.StatusBadRequest},
		{ErrInvalidLanguage, KindValidation, http.StatusBadRequest},
		{ErrQuestionNotFound, KindNotFound, http.StatusNotFound},
		{ErrCategoryNotFound, KindNotFound, http.StatusNotFound},
		{ErrEmailRegistered, KindConflict, http.StatusConflict},
		{ErrInvalidCredentials, KindUnauthorized, http.StatusUnauthorized},
		{ErrTokenMissing, KindTokenMissing, http.StatusUnauthorized},
		{fmt.Errorf("%w: sig", ErrTokenInvalid), KindTokenInvalid, http.StatusUnauthorized},
		{ErrTokenExpired, KindTokenExpired, http.StatusUnauthorized},
		{ErrPermissionDenied, KindForbidden, http.StatusForbidden},
		{errors.New("db down"), KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		kind, status := ErrorKind(tc.err)
		assert.Equal(t, tc.kind, kind, tc.err.Error())
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), KindInternal)
}
