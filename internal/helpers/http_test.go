package helpers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/models"
	"github.com/stretchr/testify/assert"
)

type testCase struct {
	Name     string
	Response models.Response
	Expected expectedResponse
}

type expectedResponse struct {
	StatusCode int
	Body       string
	Header     string
}

func TestRespondHTTP(t *testing.T) {
	testCases := []testCase{
		{
			Name: "success",
			Response: models.Response{
				StatusCode: http.StatusOK,
				Body:       `{"message":"Voucher email sent successfully"}`,
				Headers:    map[string]string{"Content-Type": "application/json"},
			},
			Expected: expectedResponse{
				StatusCode: http.StatusOK,
				Body:       `{"message":"Voucher email sent successfully"}`,
				Header:     "application/json",
			},
		},
		{
			Name: "error",
			Response: models.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       `{"error":"Unexpected error: boom"}`,
				Headers:    map[string]string{"Content-Type": "application/json"},
			},
			Expected: expectedResponse{
				StatusCode: http.StatusInternalServerError,
				Body:       `{"error":"Unexpected error: boom"}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "empty_response",
			Response: models.Response{},
			Expected: expectedResponse{
				StatusCode: http.StatusOK,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rw := httptest.NewRecorder()

			helpers.RespondHTTP(tc.Response, rw)

			assert.Equal(t, tc.Expected.StatusCode, rw.Code)
			assert.Equal(t, tc.Expected.Header, rw.Header().Get("Content-Type"))
			assert.Equal(t, tc.Expected.Body, rw.Body.String())
		})
	}
}
