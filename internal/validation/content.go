package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxReviewLength bounds review body size.
	MaxReviewLength = 5000
	// MaxCommentLength bounds comment and reply body size.
	MaxCommentLength = 2000
)

// ValidateRating checks a review rating is within the 1-5 scale.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// ValidateReviewContent checks review body presence and size.
func ValidateReviewContent(content string) error {
	return validateBody("review", content, MaxReviewLength)
}

// ValidateCommentContent checks comment body presence and size.
func ValidateCommentContent(content string) error {
	return validateBody("comment", content, MaxCommentLength)
}

func validateBody(kind, content string, maxLen int) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%s content cannot be empty", kind)
	}
	if utf8.RuneCountInString(content) > maxLen {
		return fmt.Errorf("%s content must not exceed %d characters", kind, maxLen)
	}
	return nil
}
