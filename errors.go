package polyglot

import "errors"

var (
	ErrEmptyLocale   = errors.New("polyglot: locale cannot be empty")
	ErrNilMessages   = errors.New("polyglot: messages cannot be nil")
	ErrNilPluralRule = errors.New("polyglot: plural rule cannot be nil")
	ErrInvalidFile   = errors.New("polyglot: invalid translation file")
)
