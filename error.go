package msgformat

import (
	"errors"
	"fmt"
)

// Error categories, usable with errors.Is.
var (
	ErrParse              = errors.New("msgformat: parse error")
	ErrMissingArgument    = errors.New("msgformat: missing argument")
	ErrBranch             = errors.New("msgformat: no matching branch")
	ErrArgumentType       = errors.New("msgformat: invalid argument type")
	ErrMissingTranslation = errors.New("msgformat: missing translation")
	ErrNotAPattern        = errors.New("msgformat: translation is not a pattern")
)

// ParseError reports a syntax defect in a pattern. Position is a 0-based
// index, in characters, into the pattern.
type ParseError struct {
	Message  string
	Position int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// MissingArgumentError is returned when a rendered placeholder has no entry
// in the supplied params.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return "missing argument: " + e.Name
}

func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}

// BranchError is returned when a selected plural, select or selectordinal
// construct has neither the resolved key nor an "other" branch.
type BranchError struct {
	Construct string
	Name      string
	Key       BranchKey
}

func (e *BranchError) Error() string {
	return fmt.Sprintf("no matching %s branch for '%s' in argument %s", e.Construct, e.Key, e.Name)
}

func (e *BranchError) Unwrap() error {
	return ErrBranch
}

// ArgumentTypeError is returned when plural or selectordinal receive a value
// that is not a number.
type ArgumentTypeError struct {
	Name  string
	Value interface{}
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("argument %s must be numeric, got %T", e.Name, e.Value)
}

func (e *ArgumentTypeError) Unwrap() error {
	return ErrArgumentType
}

// MissingTranslationError is returned by the Translator when no resolver in
// any candidate locale knows the key.
type MissingTranslationError struct {
	Locale string
	Key    string
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("translation missing: %s.%s", e.Locale, e.Key)
}

func (e *MissingTranslationError) Unwrap() error {
	return ErrMissingTranslation
}

// TranslatedError carries a translated, user-facing message on top of an
// underlying error. Error returns the translated message.
type TranslatedError struct {
	Key     string
	Message string
	Err     error
}

func (e *TranslatedError) Error() string {
	return e.Message
}

func (e *TranslatedError) Unwrap() error {
	return e.Err
}

// ErrorKey is the translation key, usable as a stable API identifier.
func (e *TranslatedError) ErrorKey() string {
	return e.Key
}
