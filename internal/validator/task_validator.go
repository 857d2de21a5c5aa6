package validator

import (
	"strings"
	"unicode/utf8"
)

const maxTitleLen = 500

// タイトルは前後空白を除いて1〜500文字
func ValidateTaskTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)

	switch n := utf8.RuneCountInString(trimmed); {
	case n == 0:
		return "", errorsOf([]string{"Title is required"})
	case n > maxTitleLen:
		return "", errorsOf([]string{"Title must be 500 characters or less"})
	}
	return trimmed, nil
}
