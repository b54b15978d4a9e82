package ast

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

func errShortInput(what string) error {
	return fmt.Errorf("%w: %s", vimperr.ErrShortInput, what)
}

func errBadTag(what string, got byte) error {
	return fmt.Errorf("%w: %s tag 0x%02x", vimperr.ErrBadTag, what, got)
}
