package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"auth api key", errors.New("invalid API_KEY provided"), KindAuth},
		{"auth 403", errors.New("request failed with status 403"), KindAuth},
		{"rate limit 429", errors.New("429 Too Many Requests"), KindRateLimit},
		{"rate limit quota", errors.New("daily quota exhausted"), KindRateLimit},
		{"overload 503", errors.New("503 Service Unavailable"), KindServerOverload},
		{"overload keyword", errors.New("model is overloaded, retry later"), KindServerOverload},
		{"server 500", errors.New("500 Internal Server Error"), KindServerError},
		{"safety", errors.New("response blocked by content policy"), KindSafetyBlock},
		{"safety caps", errors.New("finish reason: SAFETY"), KindSafetyBlock},
		{"network refused", errors.New("dial tcp: connection refused"), KindNetwork},
		{"network dns", errors.New("lookup api.example: no such host"), KindNetwork},
		{"unknown", errors.New("something inexplicable"), KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, msg := Classify(tc.err)
			assert.Equal(t, tc.kind, kind)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// An auth signature must win over every later rule even when both match.
	kind, _ := Classify(errors.New("403: quota blocked by network 500"))
	assert.Equal(t, KindAuth, kind)

	kind, _ = Classify(errors.New("429 quota exceeded, server overloaded"))
	assert.Equal(t, KindRateLimit, kind)
}

func TestClassifyNilError(t *testing.T) {
	kind, msg := Classify(nil)
	assert.Equal(t, KindUnknown, kind)
	assert.Contains(t, msg, "System Fault")
}

func TestClassifyUnknownSnippetTruncation(t *testing.T) {
	long := strings.Repeat("x", 200)
	kind, msg := Classify(fmt.Errorf("%s", long))
	assert.Equal(t, KindUnknown, kind)
	assert.Contains(t, msg, strings.Repeat("x", 50))
	assert.NotContains(t, msg, strings.Repeat("x", 51))
}
