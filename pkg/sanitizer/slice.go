package sanitizer

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}
	return SanitizeSlice(items, normalizer)
}

func NormalizeOrigins(origins []string) []string {
	return NormalizeStringSlice(origins, func(s string) string {
		return trimAndLower(s)
	})
}
