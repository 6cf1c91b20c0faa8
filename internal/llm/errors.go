package llm

import (
	"fmt"
	"strings"
)

// ErrorKind buckets a raw model-call failure into one of the known
// provider failure categories.
type ErrorKind string

const (
	KindAuth           ErrorKind = "auth"
	KindRateLimit      ErrorKind = "rate_limit"
	KindServerOverload ErrorKind = "server_overload"
	KindServerError    ErrorKind = "server_error"
	KindSafetyBlock    ErrorKind = "safety_block"
	KindNetwork        ErrorKind = "network"
	KindUnknown        ErrorKind = "unknown"
)

const unknownSnippetLen = 50

type classifyRule struct {
	kind       ErrorKind
	signatures []string
	message    string
}

// Rules are checked in priority order; the first signature hit wins.
var classifyRules = []classifyRule{
	{
		kind:       KindAuth,
		signatures: []string{"API_KEY", "403", "401"},
		message:    "Neural Link Failure: Authentication rejected. Please check API configuration.",
	},
	{
		kind:       KindRateLimit,
		signatures: []string{"429", "quota"},
		message:    "Neural Overload: Rate limit exceeded. Please wait a moment before transmitting again.",
	},
	{
		kind:       KindServerOverload,
		signatures: []string{"503", "overloaded"},
		message:    "System Busy: The AI models are currently experiencing high traffic. Please try again shortly.",
	},
	{
		kind:       KindServerError,
		signatures: []string{"500"},
		message:    "System Error: An internal server error occurred within the model provider.",
	},
	{
		kind:       KindSafetyBlock,
		signatures: []string{"SAFETY", "blocked"},
		message:    "Protocol Restriction: My safety filters prevented me from generating this response.",
	},
	{
		kind:       KindNetwork,
		signatures: []string{"network", "connection refused", "no such host", "timeout"},
		message:    "Connection Lost: Unable to reach the AI network. Please check your internet connection.",
	},
}

// Classify maps a raw failure to an error kind and a non-technical
// user-facing message. Total: any input, including nil, yields a valid pair.
func Classify(err error) (ErrorKind, string) {
	var raw string
	if err != nil {
		raw = err.Error()
	}
	for _, rule := range classifyRules {
		for _, sig := range rule.signatures {
			if strings.Contains(raw, sig) {
				return rule.kind, rule.message
			}
		}
	}
	snippet := raw
	if len(snippet) > unknownSnippetLen {
		snippet = snippet[:unknownSnippetLen]
	}
	return KindUnknown, fmt.Sprintf("System Fault: An unexpected error occurred. (%s...)", snippet)
}
