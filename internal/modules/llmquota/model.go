package llmquota

import "errors"

// ErrQuotaExhausted is returned when a user has no LLM calls remaining for
// the current month.
var ErrQuotaExhausted = errors.New("llm quota exhausted")

// MonthlyCalls is the number of LLM-backed answers granted per month.
// Cached FAQ answers and local intents never count against it.
const MonthlyCalls = 200
