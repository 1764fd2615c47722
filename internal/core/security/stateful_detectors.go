package security

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// toctouWindow is the line distance under which a check and a later use
	// are correlated.
	toctouWindow = 10
	// cacheWindow is the largest read/write distance still treated as a
	// legitimate cache round trip.
	cacheWindow = 5
)

var (
	existenceCheckRe = regexp.MustCompile(`\[ -e .* \]`)

	assignmentRe      = regexp.MustCompile(`^\s*(?:export\s+|local\s+|readonly\s+|declare\s+)?([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)
	externalCommandRe = regexp.MustCompile(`\b(?:grep|cat|awk|sed|cut|tail|head)\b`)
	evalRe            = regexp.MustCompile(`\beval\b`)

	pidFileAssignRe = regexp.MustCompile(`(?i)PID_?FILE\s*=`)
	killOrDeleteRe  = regexp.MustCompile(`\b(?:kill|rm)\b`)
	oldPIDRe        = regexp.MustCompile(`(?i)old_?pid`)

	infiniteLoopRe = regexp.MustCompile(`\bwhile\s+(?:true|:|\[\s*1\s*\]|\(\(\s*1\s*\)\))(?:\s|;|$)`)
	logOutputRe    = regexp.MustCompile(`\b(?:echo|printf)\b|>>`)

	cacheNameRe      = regexp.MustCompile(`\b(?:get_cache|cache_get|read_cache|load_cache|fetch_cache)\b`)
	catRe            = regexp.MustCompile(`\bcat\b`)
	conditionalRe    = regexp.MustCompile(`\b(?:if|elif|while|until)\b|\[`)
	comparisonRe     = regexp.MustCompile(`-eq|-ne|-gt|-lt|-ge|-le|==|!=`)
	ifRe             = regexp.MustCompile(`\bif\b`)
	rmRe             = regexp.MustCompile(`\brm\b`)
	recursiveFlagRe  = regexp.MustCompile(`(?:^|\s)(?:-[a-zA-Z]*[rR][a-zA-Z]*|--recursive)(?:\s|$)`)
	forceFlagRe      = regexp.MustCompile(`(?:^|\s)(?:-[a-zA-Z]*f[a-zA-Z]*|--force)(?:\s|$)`)
	pingRe           = regexp.MustCompile(`\bping\b`)

	lockQueryRe  = regexp.MustCompile(`(?i)\b(?:flock|lsof|fuser)\b|lock_?status|is_?locked|check_?lock`)
	logCallRe    = regexp.MustCompile(`(?i)\b(?:logger|log|syslog)\b|\blog_\w+`)
	backgroundRe = regexp.MustCompile(`(?:^|[^&>])&(?:[^&>]|$)`)

	cacheStatementRe  = regexp.MustCompile(`^\s*[A-Za-z_]*cache[A-Za-z_]*(?:\s|$)`)
	cacheExpressionRe = regexp.MustCompile("(?:\\$\\(|`)\\s*[A-Za-z_]*cache[A-Za-z_]*\\b")

	serviceCommandRe = regexp.MustCompile(`\b(?:ping|curl|wget|systemctl|apt-get|yum|dnf)\b`)
	stdoutNullRe     = regexp.MustCompile(`(?:^|[^0-9&])>>?\s*/dev/null|\b1>>?\s*/dev/null`)
	stderrNullRe     = regexp.MustCompile(`\b2>>?\s*/dev/null|\b2>&1`)
	allNullRe        = regexp.MustCompile(`&>>?\s*/dev/null`)

	pidPathAssignRe = regexp.MustCompile(`^\s*(?:export\s+|local\s+|readonly\s+)?([A-Za-z_][A-Za-z0-9_]*)=["']?([^"'\s]*\.pid)["']?\s*$`)
	probeSignalRe   = regexp.MustCompile(`\bkill\s+(?:-0|-s\s+0|-n\s+0)\b`)
	pidReadRe       = regexp.MustCompile(`\$\(\s*(?:cat\s+|<\s*)([^)]*)\)`)
	exitRe          = regexp.MustCompile(`\b(?:exit|return)\b`)
)

// DetectTOCTOU correlates existence checks with file operations that follow
// within toctouWindow lines. The window is positional, not control-flow aware.
func DetectTOCTOU(lines []string) []Finding {
	var findings []Finding
	var checks []int
	for idx, line := range lines {
		if existenceCheckRe.MatchString(line) {
			checks = append(checks, idx)
		}
		if !(strings.Contains(line, ">") || strings.Contains(line, "cat") ||
			strings.Contains(line, "rm ") || strings.Contains(line, "mv ")) {
			continue
		}
		// Checks outside the window can never correlate again.
		for len(checks) > 0 && idx-checks[0] >= toctouWindow {
			checks = checks[1:]
		}
		for _, checkIdx := range checks {
			if idx > checkIdx {
				findings = append(findings, newFinding(SeverityWarning, KindTOCTOURace, lines, idx,
					fmt.Sprintf("Potential TOCTOU race condition after check at line %d", checkIdx+1)))
			}
		}
	}
	return findings
}

type trackedVar struct {
	name string
	line int
}

// DetectEvalInjection tracks variables assigned from external-data commands
// and flags eval lines that reference them.
func DetectEvalInjection(lines []string) []Finding {
	var tracked []trackedVar
	seen := make(map[string]bool)
	for idx, line := range lines {
		m := assignmentRe.FindStringSubmatch(line)
		if m == nil || seen[m[1]] {
			continue
		}
		if externalCommandRe.MatchString(m[2]) {
			seen[m[1]] = true
			tracked = append(tracked, trackedVar{name: m[1], line: idx + 1})
		}
	}

	var findings []Finding
	for idx, line := range lines {
		if !evalRe.MatchString(line) {
			continue
		}
		for _, v := range tracked {
			if strings.Contains(line, v.name) {
				findings = append(findings, newFinding(SeverityCritical, KindExternalInputToEval, lines, idx,
					fmt.Sprintf("Variable '%s' assigned from external input at line %d is passed to eval", v.name, v.line)))
			}
		}
		if strings.Contains(line, "$") {
			findings = append(findings, newFinding(SeverityWarning, KindEvalUsage, lines, idx,
				"eval with variable expansion detected (possible code injection)"))
		}
	}
	return findings
}

// DetectPIDFileRace arms on the first PID file reference and then flags
// kill/rm actions on a stale PID. The latch is never cleared.
func DetectPIDFileRace(lines []string) []Finding {
	var findings []Finding
	armed := false
	for idx, line := range lines {
		if armed && killOrDeleteRe.MatchString(line) && oldPIDRe.MatchString(line) {
			findings = append(findings, newFinding(SeverityWarning, KindPIDFileRaceRisk, lines, idx,
				"Stale PID from PID file is acted upon without verifying the process (PID reuse race)"))
		}
		if pidFileAssignRe.MatchString(line) || strings.Contains(line, "/var/run/") {
			armed = true
		}
	}
	return findings
}

// DetectInfiniteLogging arms on an unconditional infinite loop header and
// flags every later line that writes output. The latch is never cleared.
func DetectInfiniteLogging(lines []string) []Finding {
	var findings []Finding
	armed := false
	for idx, line := range lines {
		if armed && logOutputRe.MatchString(line) {
			findings = append(findings, newFinding(SeverityWarning, KindInfiniteLoggingRisk, lines, idx,
				"Output written inside an unbounded loop (log flooding / disk exhaustion risk)"))
		}
		if infiniteLoopRe.MatchString(line) {
			armed = true
		}
	}
	return findings
}

// DetectDelayedSelfDestruct correlates a cache lookup, a suspicious condition
// and a protected-root force delete anywhere in the file. It reports at most
// one such pattern, after any suppressed ping lines it met along the way.
func DetectDelayedSelfDestruct(lines []string) []Finding {
	var findings []Finding
	cacheLine, destroyLine := 0, 0
	trigger := false

	for idx, line := range lines {
		cacheRef := cacheNameRe.MatchString(line) || (catRe.MatchString(line) && strings.Contains(line, "cache"))
		if cacheRef && cacheLine == 0 {
			cacheLine = idx + 1
		}

		if conditionalRe.MatchString(line) && strings.Contains(line, "|") &&
			strings.Contains(line, "grep") && comparisonRe.MatchString(line) {
			trigger = true
		}
		if ifRe.MatchString(line) && cacheNameRe.MatchString(line) {
			trigger = true
		}

		if rmRe.MatchString(line) && recursiveFlagRe.MatchString(line) && forceFlagRe.MatchString(line) &&
			strings.Contains(line, "--no-preserve-root") && destroyLine == 0 {
			destroyLine = idx + 1
		}

		if pingRe.MatchString(line) && (stdoutNullRe.MatchString(line) || allNullRe.MatchString(line)) {
			findings = append(findings, newFinding(SeverityLow, KindSilentFailure, lines, idx,
				"ping output suppressed to /dev/null; connectivity failures are hidden"))
		}
	}

	if cacheLine > 0 && trigger && destroyLine > 0 {
		findings = append(findings, newFinding(SeverityCritical, KindDelayedSelfDestruct, lines, destroyLine-1,
			fmt.Sprintf("Destructive root deletion gated on a hidden trigger and cached value (cache access at line %d)", cacheLine)))
	}
	return findings
}

// DetectBackgroundLockMonitor flags a lock-state query immediately followed by
// a logging call when the script ends by backgrounding a job.
func DetectBackgroundLockMonitor(lines []string) []Finding {
	if len(lines) == 0 || !backgroundRe.MatchString(strings.TrimSpace(lines[len(lines)-1])) {
		return nil
	}
	var findings []Finding
	for idx := 0; idx+1 < len(lines); idx++ {
		if lockQueryRe.MatchString(lines[idx]) && logCallRe.MatchString(lines[idx+1]) {
			findings = append(findings, newFinding(SeverityMedium, KindBackgroundLockMonitor, lines, idx,
				fmt.Sprintf("Lock state polled and logged at line %d by a backgrounded job", idx+2)))
		}
	}
	return findings
}

// DetectCacheAbuse flags cache reads with no cache write within cacheWindow lines.
func DetectCacheAbuse(lines []string) []Finding {
	var writes, reads []int
	for idx, line := range lines {
		if cacheStatementRe.MatchString(line) {
			writes = append(writes, idx)
		}
		if cacheExpressionRe.MatchString(line) {
			reads = append(reads, idx)
		}
	}

	var findings []Finding
	for _, r := range reads {
		near := false
		for _, w := range writes {
			if abs(r-w) <= cacheWindow {
				near = true
				break
			}
		}
		if !near {
			findings = append(findings, newFinding(SeverityHigh, KindAbuseOfCache, lines, r,
				fmt.Sprintf("Cached value read with no cache write within %d lines (stale or planted data)", cacheWindow)))
		}
	}
	return findings
}

// DetectSilentFailure flags network, service and package commands whose
// stdout and stderr are both discarded.
func DetectSilentFailure(lines []string) []Finding {
	var findings []Finding
	for idx, line := range lines {
		cmd := serviceCommandRe.FindString(line)
		if cmd == "" {
			continue
		}
		if allNullRe.MatchString(line) || (stdoutNullRe.MatchString(line) && stderrNullRe.MatchString(line)) {
			findings = append(findings, newFinding(SeverityMedium, KindSilentFailure, lines, idx,
				fmt.Sprintf("Output and errors of '%s' discarded; failures go unnoticed", cmd)))
		}
	}
	return findings
}

// DetectPIDCheckMasking flags the first exit/return after a liveness probe on
// a PID read from the tracked PID file.
func DetectPIDCheckMasking(lines []string) []Finding {
	var findings []Finding
	var pidVar string
	armed := false
	checkLine := 0

	for idx, line := range lines {
		if armed && exitRe.MatchString(line) {
			findings = append(findings, newFinding(SeverityWarning, KindPIDCheckMasking, lines, idx,
				fmt.Sprintf("Exit masks the outcome of the PID liveness check at line %d", checkLine)))
			armed = false
		}

		if m := pidPathAssignRe.FindStringSubmatch(line); m != nil {
			pidVar = m[1]
			continue
		}

		if pidVar == "" || !probeSignalRe.MatchString(line) {
			continue
		}
		for _, m := range pidReadRe.FindAllStringSubmatch(line, -1) {
			target := strings.Trim(strings.TrimSpace(m[1]), `"'`)
			if strings.HasSuffix(target, ".pid") || target == "$"+pidVar || target == "${"+pidVar+"}" {
				armed = true
				checkLine = idx + 1
				break
			}
		}
	}
	return findings
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
