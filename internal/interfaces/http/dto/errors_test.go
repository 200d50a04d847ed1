package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

func TestDomainCodesMapToStatus(t *testing.T) {
	tests := []struct {
		domain string
		code   string
		status int
	}{
		{shared.CodeValidation, ErrCodeValidation, http.StatusBadRequest},
		{shared.CodeNotFound, ErrCodeNotFound, http.StatusNotFound},
		{shared.CodeUnauthorized, ErrCodeUnauthorized, http.StatusUnauthorized},
		{shared.CodeTransport, ErrCodeUpstream, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			code := NormalizeErrorCode(tt.domain)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, GetHTTPStatus(code))
		})
	}
}

func TestUnknownCode(t *testing.T) {
	assert.Equal(t, "SOMETHING", NormalizeErrorCode("SOMETHING"))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING"))
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]int{1}, 4, 1)
	assert.True(t, resp.Success)
	assert.Equal(t, &Meta{Total: 4, Filtered: 1}, resp.Meta)
}
