package respond

import (
	"regexp"
)

// Patterns are applied in order, most specific first.
var secretPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]+`), "sk-ant-****"},
	{regexp.MustCompile(`sk-or-[a-zA-Z0-9_-]+`), "sk-or-****"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`), "sk-****"},
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{20,}`), "AIza****"},
	{regexp.MustCompile(`(?i)(bearer\s+)[^\s"']+`), "${1}****"},
	{regexp.MustCompile(`([?&](?:key|api_key|token)=)[^&\s"]+`), "${1}****"},
}

// SanitizeError returns err's message with API keys and bearer tokens masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, p := range secretPatterns {
		msg = p.re.ReplaceAllString(msg, p.repl)
	}
	return msg
}
