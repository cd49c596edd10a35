package analysis

import "strings"

// UnknownPlatform is returned when no platform keyword matches.
const UnknownPlatform = "Unknown Platform"

// platformKeywords maps notice-text keywords to platform names. Order
// matters: the first matching keyword wins, so more specific keywords
// (e.g. "amazon flex") come before their generic fallbacks ("flex").
var platformKeywords = []struct {
	keyword string
	name    string
}{
	{"doordash", "DoorDash"},
	{"dasher", "DoorDash"},
	{"uber", "Uber"},
	{"lyft", "Lyft"},
	{"instacart", "Instacart"},
	{"amazon flex", "Amazon Flex"},
	{"flex", "Amazon Flex"},
	{"shipt", "Shipt"},
	{"grubhub", "Grubhub"},
}

// DetectPlatform returns the platform a notice most likely came from,
// by case-insensitive substring match against a fixed keyword list.
// Absence of a match is a valid outcome, not an error.
func DetectPlatform(text string) string {
	lower := strings.ToLower(text)
	for _, pk := range platformKeywords {
		if strings.Contains(lower, pk.keyword) {
			return pk.name
		}
	}
	return UnknownPlatform
}

// reasonBuckets maps deactivation-reason keywords to coarse categories.
var reasonBuckets = []struct {
	category string
	keywords []string
}{
	{"safety", []string{"safety", "unsafe", "accident", "incident"}},
	{"fraud", []string{"fraud", "scam", "theft", "stolen"}},
	{"ratings", []string{"rating", "star", "review", "satisfaction"}},
	{"completion", []string{"completion", "cancel", "acceptance"}},
}

// CategorizeReason buckets a free-text deactivation reason into one of
// safety, fraud, ratings, completion, or unknown.
func CategorizeReason(reason string) string {
	lower := strings.ToLower(reason)
	for _, bucket := range reasonBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return bucket.category
			}
		}
	}
	return "unknown"
}
