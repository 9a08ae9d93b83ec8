package review

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal checks if stdout is a TTY. Local runs print their
// findings human-readably when this is true and as JSON otherwise, so
// piped output stays machine-consumable.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
