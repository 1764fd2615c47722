package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Lin-Jiong-HDU/shellguard/internal/core/security"
)

// Confirm prompts the user for command confirmation on stdin/stdout
func Confirm(cmd security.Command, checkResult *security.CheckResult) (bool, error) {
	return ConfirmWithIO(cmd, checkResult, nil, nil)
}

// ConfirmWithIO prompts the user with provided IO (for testing).
// End of input declines.
func ConfirmWithIO(cmd security.Command, checkResult *security.CheckResult, input io.Reader, output io.Writer) (bool, error) {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}

	// Display prompt
	fmt.Fprintf(output, "\n⚠️  This command requires your confirmation\n\n")
	fmt.Fprintf(output, "Command: %s\n", cmd)

	if checkResult.Warning != "" {
		fmt.Fprintf(output, "Warning: %s\n", checkResult.Warning)
	}

	if checkResult.Reason != "" {
		fmt.Fprintf(output, "Reason:  %s\n", checkResult.Reason)
	}

	for _, f := range checkResult.Findings {
		if f.Severity.Rank() >= security.SeverityHigh.Rank() {
			fmt.Fprintf(output, "  - %s\n", f)
		}
	}

	fmt.Fprintf(output, "\n[y] execute  [n] cancel\n> ")

	// Read input
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		choice := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch choice {
		case "y", "yes":
			fmt.Fprintln(output, "✓ Confirmed")
			return true, nil
		case "n", "no", "q":
			fmt.Fprintln(output, "✗ Cancelled")
			return false, nil
		default:
			fmt.Fprintf(output, "Invalid choice, enter y/n: ")
		}
	}

	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}
