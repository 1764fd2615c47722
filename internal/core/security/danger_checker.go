package security

import (
	"path/filepath"
	"strings"
)

// Command is a program invocation with its arguments.
type Command struct {
	Cmd  string   `json:"cmd"`
	Args []string `json:"args,omitempty"`
}

// String renders the command as a single shell line.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Cmd
	}
	return c.Cmd + " " + strings.Join(c.Args, " ")
}

// DangerousCommandChecker detects dangerous commands.
type DangerousCommandChecker struct {
	dangerousCommands []string
	dangerousPatterns []string
}

// NewDangerousCommandChecker creates a new danger checker.
func NewDangerousCommandChecker() *DangerousCommandChecker {
	return &DangerousCommandChecker{
		dangerousCommands: []string{
			"rm", "rmdir", "dd", "mkfs", "fdisk", "shutdown", "reboot",
			"chmod", "chown", "userdel", "groupdel", "kill", "killall",
		},
		dangerousPatterns: dangerousKeywords,
	}
}

// IsDangerous checks if a command is dangerous.
func (dc *DangerousCommandChecker) IsDangerous(cmd Command) bool {
	// Normalize /bin/rm, ./rm and mkfs.ext4 down to the base program name
	name := filepath.Base(cmd.Cmd)
	if base, _, ok := strings.Cut(name, "."); ok && base != "" {
		name = base
	}
	for _, dangerous := range dc.dangerousCommands {
		if name == dangerous {
			return true
		}
	}

	line := cmd.String()
	for _, pattern := range dc.dangerousPatterns {
		if strings.Contains(line, pattern) {
			return true
		}
	}

	return false
}
