package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrModelInvocation indicates the model call failed (auth, network, empty output).
var ErrModelInvocation = errors.New("model invocation failed")

// ErrResponseParse indicates the model output held no recoverable JSON.
var ErrResponseParse = errors.New("failed to parse JSON from model response")
