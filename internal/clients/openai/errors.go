package openai

import "strings"

// ClassifyError maps a provider error onto the short user-facing message the
// frontend shows when generation fails. The provider does not expose stable
// error codes for all of these, so this matches on message substrings.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "content_policy") || strings.Contains(msg, "content policy") || strings.Contains(msg, "safety system"):
		return "The request was rejected by the provider's content policy. Try rephrasing your subject or goals."
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit") || strings.Contains(msg, "http 429"):
		return "The generation service is receiving too many requests. Please wait a moment and try again."
	case strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "quota"):
		return "The generation service quota has been exhausted. Please try again later."
	case strings.Contains(msg, "billing"):
		return "There is a billing problem with the generation service account."
	case strings.Contains(msg, "invalid_api_key") || strings.Contains(msg, "incorrect api key") || strings.Contains(msg, "http 401"):
		return "The generation service rejected the configured API key."
	case strings.Contains(msg, "context deadline exceeded") || strings.Contains(msg, "timeout"):
		return "The generation request timed out. Please try again."
	default:
		return "Curriculum generation failed. Please try again."
	}
}
