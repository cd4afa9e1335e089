package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Headers    http.Header
	Body       map[string]interface{}
	Raw        []byte
}

// Data returns the "data" object of a StandardResponse body
func (r TestResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	var body []byte
	switch b := req.Body.(type) {
	case nil:
	case string:
		body = []byte(b)
	default:
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" &&
		bytes.HasPrefix([]byte(w.Header().Get("Content-Type")), []byte("application/json")) {
		if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
			t.Fatalf("Failed to unmarshal response body: %v", err)
		}
	}

	return TestResponse{
		StatusCode: w.Code,
		Headers:    w.Header(),
		Body:       responseBody,
		Raw:        w.Body.Bytes(),
	}
}

// AssertResponse asserts status code and, when given, the top-level message
func AssertResponse(t *testing.T, response TestResponse, expectedStatusCode int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode)
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, response.Body["message"])
	}
}

// NewTestRouter returns a gin engine in test mode
func NewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
