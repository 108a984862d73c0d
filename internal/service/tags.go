package service

import "strings"

// NormalizeTagLabels turns a raw comma separated tag string into the
// canonical label set: labels are trimmed, lowercased, restricted to ASCII
// letters and digits, and deduplicated preserving first occurrence order.
func NormalizeTagLabels(raw string) []string {
	parts := strings.Split(raw, ",")
	labels := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		label := strings.ToLower(strings.TrimSpace(part))
		if label == "" || !isAlnum(label) {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	return labels
}

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
