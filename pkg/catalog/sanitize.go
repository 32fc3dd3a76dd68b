package catalog

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// SanitizeRichText strips everything but links and inline emphasis from raw.
func SanitizeRichText(raw string) string {
	return sanitizeRichText(raw)
}

// PlainText drops all markup from rich text copy, for terminals.
func PlainText(raw string) string {
	stripped := bluemonday.StrictPolicy().Sanitize(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(html.UnescapeString(stripped)), " ")
}

func sanitizeRichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(richTextSanitizer().Sanitize(trimmed))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "b", "i", "br", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("class").OnElements("span")
		policy.RequireParseableURLs(true)
		policy.AllowURLSchemes("mailto", "http", "https")
		policy.AllowRelativeURLs(true)
		policy.RequireNoFollowOnFullyQualifiedLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		richTextPolicy = policy
	})
	return richTextPolicy
}
