package persist

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// forbiddenNameChars are the characters a save slot name may not contain.
const forbiddenNameChars = `/?<>\:*|[].;={}`

// ValidateSlotName enforces the save-file naming rules: 1–20 characters, no
// leading space, none of the forbidden characters.
func ValidateSlotName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return fmt.Errorf("save name must not be empty")
	}
	if n > 20 {
		return fmt.Errorf("save name must be at most 20 characters")
	}
	if strings.HasPrefix(name, " ") {
		return fmt.Errorf("save name must not start with a space")
	}
	if i := strings.IndexAny(name, forbiddenNameChars); i >= 0 {
		return fmt.Errorf("save name must not contain %q", name[i:i+1])
	}
	return nil
}
