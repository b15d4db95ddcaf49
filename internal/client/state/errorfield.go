package state

import "strings"

// fieldKeywords is checked in order; the first keyword found in the message
// names the offending field for inline display.
var fieldKeywords = []string{"company", "position", "email", "password", "name", "status"}

// FieldFromError maps a server error message back to the form field it
// refers to by keyword matching. Returns "" when no field matches, in which
// case the message is shown as a general notification.
func FieldFromError(msg string) string {
	lowered := strings.ToLower(msg)
	for _, keyword := range fieldKeywords {
		if strings.Contains(lowered, keyword) {
			return keyword
		}
	}
	return ""
}
