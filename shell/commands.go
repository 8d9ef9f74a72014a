package shell

import (
	"errors"
	"fmt"
	"strings"
)

// errExit ends the session
var errExit = errors.New("exit")

// argMode selects how the text after the operation name is split
type argMode int

const (
	noArgs      argMode = iota
	lineArg             // the whole remainder is one argument
	nameAndLine         // a name, then the remainder as a second argument
	fieldArgs           // exactly args whitespace separated arguments
)

type command struct {
	usage string
	args  int // minimum argument count; exact for fieldArgs
	mode  argMode
	run   func(sh *Shell, args []string) error
}

func (c command) parse(rest string) []string {
	switch c.mode {
	case lineArg:
		if rest == "" {
			return nil
		}
		return []string{rest}
	case nameAndLine:
		name, line := cutField(rest)
		if name == "" {
			return nil
		}
		if line == "" {
			return []string{name}
		}
		return []string{name, line}
	case fieldArgs:
		return strings.Fields(rest)
	}
	return nil
}

// order is the listing order of commands in help and the banner
var order = []string{"mkdir", "cd", "ls", "touch", "cat", "echo", "mv", "cp", "rm", "pwd", "find", "help", "exit"}

var commands map[string]command

func init() {
	commands = map[string]command{
		"mkdir": {usage: "mkdir <directory_name>", args: 1, mode: lineArg, run: func(sh *Shell, args []string) error {
			return sh.ns.Mkdir(args[0])
		}},
		"cd": {usage: "cd <directory_path>", args: 1, mode: lineArg, run: func(sh *Shell, args []string) error {
			return sh.ns.Cd(args[0])
		}},
		"ls": {usage: "ls [directory_path]", mode: lineArg, run: (*Shell).ls},
		"touch": {usage: "touch <file_name>", args: 1, mode: lineArg, run: func(sh *Shell, args []string) error {
			return sh.ns.Touch(args[0])
		}},
		"cat": {usage: "cat <file_name>", args: 1, mode: lineArg, run: func(sh *Shell, args []string) error {
			content, err := sh.ns.Cat(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(sh.out, content)
			return nil
		}},
		"echo": {usage: "echo <file_name> <content>", args: 2, mode: nameAndLine, run: func(sh *Shell, args []string) error {
			return sh.ns.Echo(args[0], args[1])
		}},
		"mv": {usage: "mv <source_path> <destination_path>", args: 2, mode: fieldArgs, run: func(sh *Shell, args []string) error {
			if err := sh.ns.Mv(args[0], args[1]); err != nil {
				return err
			}
			sh.okClr.Fprintln(sh.out, "File moved successfully.")
			return nil
		}},
		"cp": {usage: "cp <source_path> <destination_path>", args: 2, mode: fieldArgs, run: func(sh *Shell, args []string) error {
			if err := sh.ns.Cp(args[0], args[1]); err != nil {
				return err
			}
			sh.okClr.Fprintln(sh.out, "File copied successfully.")
			return nil
		}},
		"rm": {usage: "rm <file_or_directory_path>", args: 1, mode: lineArg, run: func(sh *Shell, args []string) error {
			if err := sh.ns.Rm(args[0]); err != nil {
				return err
			}
			sh.okClr.Fprintln(sh.out, "File removed successfully.")
			return nil
		}},
		"pwd": {usage: "pwd", run: func(sh *Shell, _ []string) error {
			fmt.Fprintln(sh.out, sh.ns.Pwd())
			return nil
		}},
		"find": {usage: "find <pattern>", args: 1, mode: lineArg, run: func(sh *Shell, args []string) error {
			matches, err := sh.ns.Find(args[0])
			if err != nil {
				return err
			}
			for _, m := range matches {
				if strings.HasSuffix(m, "/") {
					sh.dirClr.Fprintln(sh.out, m)
				} else {
					fmt.Fprintln(sh.out, m)
				}
			}
			return nil
		}},
		"help": {usage: "help", run: func(sh *Shell, _ []string) error {
			for _, name := range order {
				fmt.Fprintln(sh.out, "  "+commands[name].usage)
			}
			return nil
		}},
		"exit": {usage: "exit", run: func(*Shell, []string) error {
			return errExit
		}},
	}
}

func (sh *Shell) ls(args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	listing, err := sh.ns.Ls(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Contents of %s:\n", listing.Name)
	for _, name := range listing.Dirs() {
		sh.dirClr.Fprintln(sh.out, "Directory: "+name)
	}
	for _, name := range listing.Files() {
		fmt.Fprintln(sh.out, "File: "+name)
	}
	return nil
}

func available() string {
	return strings.Join(order, ", ")
}
