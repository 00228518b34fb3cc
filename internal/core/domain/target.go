package domain

import (
	"errors"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// BuildTarget is one entry of the build matrix.
type BuildTarget struct {
	Board     string
	Shield    string
	Snippet   string
	CMakeArgs string
}

// TargetList is the build matrix in file order. Menu numbering follows this order.
type TargetList []BuildTarget

var (
	validShieldRegex  = regexp.MustCompile(`^[A-Za-z0-9_ -]+$`)
	validBoardRegex   = regexp.MustCompile(`^[A-Za-z0-9_.@/-]+$`)
	validSnippetRegex = regexp.MustCompile(`^[A-Za-z0-9_ .-]+$`)
)

// Validate reports whether the target can be turned into a build plan.
func (t BuildTarget) Validate() error {
	switch {
	case t.Board == "":
		return errors.Join(ErrInvalidTarget, zerr.With(zerr.New("board is required"), "shield", t.Shield))
	case t.Shield == "":
		return errors.Join(ErrInvalidTarget, zerr.With(zerr.New("shield is required"), "board", t.Board))
	case !validShieldRegex.MatchString(t.Shield):
		return errors.Join(ErrInvalidTarget, zerr.With(zerr.New("shield contains unsupported characters"), "shield", t.Shield))
	case !validBoardRegex.MatchString(t.Board):
		return errors.Join(ErrInvalidTarget, zerr.With(zerr.New("board contains unsupported characters"), "board", t.Board))
	case t.Snippet != "" && !validSnippetRegex.MatchString(t.Snippet):
		return errors.Join(ErrInvalidTarget, zerr.With(zerr.New("snippet contains unsupported characters"), "snippet", t.Snippet))
	}
	return nil
}

// ShieldDirName returns the shield as a directory name: spaces and underscores become hyphens.
func (t BuildTarget) ShieldDirName() string {
	return strings.NewReplacer(" ", "-", "_", "-").Replace(t.Shield)
}

// FirmwareName returns the published firmware file name, <shield>-<board>.uf2,
// with underscores in both parts replaced by hyphens. Slashes from board
// qualifiers (nice_nano//zmk) become hyphens too so the file stays in the output directory.
func FirmwareName(shield, board string) string {
	return hyphenate(shield) + "-" + hyphenate(board) + FirmwareExt
}

var hyphenReplacer = strings.NewReplacer("_", "-", "/", "-")

func hyphenate(s string) string {
	return hyphenReplacer.Replace(s)
}
