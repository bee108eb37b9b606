package redact

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const placeholder = "[REDACTED]"

type rule struct {
	name string
	re   *regexp.Regexp
}

// Order matters: provider-specific rules run before the generic sk- rule.
var rules = []rule{
	{"api-key", regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`)},
	{"aws-access-key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"aws-secret-key", regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`)},
	{"assignment", regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`)},
	{"bearer", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"private-key", regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`)},
	{"github-token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"slack-token", regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{"google-api-key", regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{"anthropic-key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{"openai-key", regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`)},
	{"hex-secret", regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`)},
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, r := range rules {
		result = r.re.ReplaceAllLiteralString(result, placeholder)
	}
	return result
}

// Finding counts matches of one rule.
type Finding struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// Scan reports which rules would fire on text, in rule-name order. Rules are
// applied in sequence the same way Secrets does, so a match consumed by an
// earlier rule is not counted twice.
func Scan(text string) []Finding {
	counts := map[string]int{}
	result := text
	for _, r := range rules {
		n := len(r.re.FindAllStringIndex(result, -1))
		if n == 0 {
			continue
		}
		counts[r.name] += n
		result = r.re.ReplaceAllLiteralString(result, placeholder)
	}
	findings := make([]Finding, 0, len(counts))
	for name, n := range counts {
		findings = append(findings, Finding{Rule: name, Count: n})
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Rule < findings[j].Rule })
	return findings
}

// ShouldRedactPath checks if a file path matches any of the redaction path patterns.
func ShouldRedactPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		// "**/name" matches name in any directory.
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			matched, err = filepath.Match(rest, filepath.Base(path))
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Content redacts secrets from content, or the whole file when its path
// matches one of redactPaths.
func Content(content, path string, redactPaths []string) string {
	if ShouldRedactPath(path, redactPaths) {
		return placeholder + " (file content redacted by path policy)\n"
	}
	return Secrets(content)
}
