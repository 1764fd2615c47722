package security

import (
	"fmt"
	"regexp"
	"strings"
)

// dangerousKeywords are substrings that mark destructive or privileged operations.
var dangerousKeywords = []string{
	"rm -rf", "mkfs", "dd if=", "shutdown", "reboot", ":(){", "chmod 777", "chown root",
}

// riskyExtractors copy or unpack content to paths chosen by their input.
var riskyExtractors = []string{"tar -x", "tar -xf", "unzip", "cp", "rsync"}

var (
	sensitiveLogRe = regexp.MustCompile(`(?i)\b(?:echo|printf|print)\b.*(?:SECRET|PASSWORD|TOKEN)`)

	worldWritableOctalRe    = regexp.MustCompile(`\bchmod\s+(?:-\w+\s+)*([0-7]?[0-7][0-7][2367])\b`)
	worldWritableSymbolicRe = regexp.MustCompile(`\bchmod\s+(?:-\w+\s+)*(?:[ugoa]*[-+=][rwxXst]*,)*([ugoa]*[ao][ugoa]*\+[rwxXst]*w[rwxXst]*)`)
)

// DetectUnsanitizedRead flags read invocations lacking the raw (-r) modifier.
func DetectUnsanitizedRead(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		if strings.Contains(line, "read ") && !(strings.Contains(line, "-r") || strings.Contains(line, "--raw")) {
			findings = append(findings, newFinding(SeverityCritical, KindUnsanitizedInput, lines, idx,
				"Unsanitized 'read' input detected (possible command injection)"))
		}
	}
	return findings
}

// DetectDangerousCommands emits one finding per dangerous keyword found on a line.
func DetectDangerousCommands(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		for _, keyword := range dangerousKeywords {
			if strings.Contains(line, keyword) {
				findings = append(findings, newFinding(SeverityCritical, KindDangerousCommand, lines, idx,
					fmt.Sprintf("Dangerous command usage detected: %s", keyword)))
			}
		}
	}
	return findings
}

// DetectUnsafeVariableExpansion flags expansions on lines without any quoting.
func DetectUnsafeVariableExpansion(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		if strings.Contains(line, "$") && !strings.Contains(line, `"`) && !strings.Contains(line, "'") {
			findings = append(findings, newFinding(SeverityInfo, KindUnsafeVariableExpansion, lines, idx,
				"Unquoted variable expansion detected (potential safety risk)"))
		}
	}
	return findings
}

// DetectPathTraversal flags extraction and copy commands fed by variables.
// Every matching extractor keyword yields its own finding.
func DetectPathTraversal(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		if !strings.Contains(line, "$") {
			continue
		}
		for _, extractor := range riskyExtractors {
			if strings.Contains(line, extractor) {
				findings = append(findings, newFinding(SeverityNone, KindPathTraversalRisk, lines, idx,
					fmt.Sprintf("Potential path traversal vulnerability (user input in extraction/copy operation: %s)", extractor)))
			}
		}
	}
	return findings
}

// DetectTmpfileRace flags /tmp usage not covered by mktemp or a cleanup trap.
func DetectTmpfileRace(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		if strings.Contains(line, "/tmp") && !strings.Contains(line, "mktemp") && !strings.Contains(line, "trap") {
			findings = append(findings, newFinding(SeverityNone, KindTmpfileRaceRisk, lines, idx,
				"Unsafe temp file usage without mktemp or file locking (possible race condition)"))
		}
	}
	return findings
}

// DetectUnsafePathManipulation flags PATH assignments whose first entry
// contains the current directory.
func DetectUnsafePathManipulation(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		if !strings.Contains(line, "PATH=") {
			continue
		}
		// Value after the last '=', first colon-delimited entry.
		value := line[strings.LastIndex(line, "=")+1:]
		first, _, _ := strings.Cut(value, ":")
		if strings.Contains(first, ".") {
			findings = append(findings, newFinding(SeverityCritical, KindUnsafePathManipulation, lines, idx,
				"Current directory (.) is prioritized in PATH, potential PATH poisoning"))
		}
	}
	return findings
}

// DetectSensitiveLogging flags echo/print statements mentioning secrets.
func DetectSensitiveLogging(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		if sensitiveLogRe.MatchString(line) {
			findings = append(findings, newFinding(SeverityHigh, KindSensitiveInfoLeak, lines, idx,
				"Sensitive value (secret, password or token) written to output or logs"))
		}
	}
	return findings
}

// DetectWorldWritableChmod flags chmod calls granting write access to everyone.
func DetectWorldWritableChmod(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		m := worldWritableOctalRe.FindStringSubmatch(line)
		if m == nil {
			m = worldWritableSymbolicRe.FindStringSubmatch(line)
		}
		if m != nil {
			findings = append(findings, newFinding(SeverityWarning, KindWorldWritableFile, lines, idx,
				fmt.Sprintf("World-writable permissions granted (mode %s)", m[1])))
		}
	}
	return findings
}
