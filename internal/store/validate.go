package store

import (
	"strings"
	"unicode/utf8"

	"github.com/AnshRaj112/moments-backend/internal/models"
)

// MaxTextLength is the longest moment or reply text, in characters, after trimming.
const MaxTextLength = 280

// normalizeText trims text and enforces 1..MaxTextLength characters.
func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{Field: "text", Message: "Text is required"}
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", &ValidationError{Field: "text", Message: "Text must be 280 characters or less"}
	}
	return text, nil
}

// requireAuthor rejects an empty or blank anonymous ID. The ID itself is kept
// verbatim since it is compared byte for byte on delete.
func requireAuthor(anonymousID string) error {
	if strings.TrimSpace(anonymousID) == "" {
		return &ValidationError{Field: "anonymousId", Message: "Anonymous ID is required"}
	}
	return nil
}

func requireID(field, id, message string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: field, Message: message}
	}
	return nil
}

func displayNameOrDefault(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.DefaultDisplayName
	}
	return name
}
