package shell

import (
	"errors"
	"fmt"

	"github.com/brettbedarf/memfs"
)

// describe turns a failed command into the single line shown to the user
func describe(op string, args []string, err error) string {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	switch op {
	case "mkdir":
		switch {
		case errors.Is(err, memfs.ErrInvalidName):
			return "Invalid directory name: " + arg
		case errors.Is(err, memfs.ErrDuplicateName):
			return "Directory already exists: " + arg
		}
	case "touch", "echo":
		switch {
		case errors.Is(err, memfs.ErrInvalidName):
			return "Invalid file name: " + arg
		case errors.Is(err, memfs.ErrDuplicateName):
			return "File already exists: " + arg
		}
	case "cd", "ls":
		return "Directory not found: " + arg
	case "cat":
		return "File not found: " + arg
	case "mv", "cp":
		verb := "move"
		if op == "cp" {
			verb = "copy"
		}
		var pathErr *memfs.PathError
		switch {
		case errors.Is(err, memfs.ErrInvalidPath):
			return "Invalid source or destination path."
		case errors.Is(err, memfs.ErrFileNotFound) && errors.As(err, &pathErr):
			return "File not found: " + pathErr.Path
		default:
			return fmt.Sprintf("Unable to %s. Source or destination not found.", verb)
		}
	case "rm":
		if errors.Is(err, memfs.ErrInvalidPath) {
			return "Invalid file or directory path."
		}
		return "Unable to remove. File or directory not found."
	case "find":
		if errors.Is(err, memfs.ErrInvalidPattern) {
			return "Invalid pattern: " + arg
		}
	}
	return fmt.Sprintf("%s: %v", op, err)
}
