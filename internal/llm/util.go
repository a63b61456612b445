package llm

import "strings"

// CleanJSONBlock unwraps a markdown code fence around a JSON response.
// Models wrap JSON in ```json ... ``` even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	// Drop the info string ("json", "javascript", ...) when the first
	// line looks like one rather than content.
	if nl := strings.Index(body, "\n"); nl >= 0 {
		info := body[:nl]
		if len(info) < 20 && !strings.ContainsAny(info, " {") {
			body = body[nl+1:]
		}
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// StripAllFences removes every fence marker anywhere in the text, not just
// wrapping ones. Interview evaluations sometimes arrive with fences buried
// mid-response, so this is more aggressive than CleanJSONBlock.
func StripAllFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
