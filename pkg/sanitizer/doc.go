// Package sanitizer provides input normalization for booking and directory data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Slugs: "Cedar & Sage" becomes "cedar-and-sage"
//   - Search keys: lowercase with diacritics removed, "Café" matches "cafe"
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Emails: Trim surrounding whitespace, keep case for display
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
