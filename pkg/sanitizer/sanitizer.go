package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeComment(comment string) string {
	return TrimAndNormalize(comment)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeAmenity(amenity string) string {
	return strings.ToLower(TrimAndNormalize(amenity))
}

// NormalizeStringSlice applies the strategy to each entry, dropping empties
// and duplicates while preserving first-seen order.
func NormalizeStringSlice(items []string, normalizer Strategy) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizeAmenities(amenities []string) []string {
	return NormalizeStringSlice(amenities, NormalizeAmenity)
}

func NormalizeImages(images []string) []string {
	return NormalizeStringSlice(images, strings.TrimSpace)
}
