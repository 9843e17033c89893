package modules

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IDLength is the fixed length of a module identifier.
const IDLength = 4

// ValidateID checks that id is usable as both a directory name and a
// generated class name: exactly 4 alphanumeric characters, starting with a
// letter, all uppercase.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("module ID cannot be empty")
	}
	// Count characters, not bytes: a multibyte identifier must not slip
	// through the length check.
	if n := utf8.RuneCountInString(id); n != IDLength {
		return fmt.Errorf("module ID must be exactly %d characters (got %d)", IDLength, n)
	}
	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errors.New("module ID must be alphanumeric")
		}
	}
	first, _ := utf8.DecodeRuneInString(id)
	if !unicode.IsLetter(first) {
		return errors.New("module ID must start with a letter")
	}
	if id != strings.ToUpper(id) {
		return errors.New("module ID must be uppercase")
	}
	return nil
}
