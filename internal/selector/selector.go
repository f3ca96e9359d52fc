package selector

import (
	"strings"

	"github.com/arhrid/agent-translator/config"
)

// Candidates produces the ordered, deduplicated list of backend URLs to
// attempt for the given text. The list is never empty:
//
//   - an explicit override URL is the sole candidate, no fallback
//   - short text with local preference on tries local first, remote second
//   - everything else goes straight to the remote backend
//
// Pure function of its inputs; the dispatcher owns trying them in order.
func Candidates(text, overrideURL string, pol config.Policy) []string {
	if overrideURL != "" {
		return []string{strings.TrimRight(overrideURL, "/")}
	}

	if pol.PreferLocal && WordCount(text) <= pol.ShortThreshold {
		return dedupe(pol.LocalURL, pol.RemoteURL)
	}

	return []string{pol.RemoteURL}
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func dedupe(urls ...string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))

	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	return out
}
