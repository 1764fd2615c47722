package security

import (
	"fmt"
	"strings"
)

// Severity is the informational rank attached to a finding.
type Severity string

const (
	// SeverityNone is used by detectors that do not rank their findings.
	SeverityNone     Severity = ""
	SeverityInfo     Severity = "Info"
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityWarning  Severity = "Warning"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var severityRanks = map[Severity]int{
	SeverityNone:     0,
	SeverityInfo:     1,
	SeverityLow:      2,
	SeverityMedium:   3,
	SeverityWarning:  4,
	SeverityHigh:     5,
	SeverityCritical: 6,
}

// Rank orders severities from SeverityNone (0) to SeverityCritical (6).
func (s Severity) Rank() int {
	return severityRanks[s]
}

// ParseSeverity parses a severity name case-insensitively.
// An empty string yields SeverityNone.
func ParseSeverity(s string) (Severity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SeverityNone, nil
	}
	for sev := range severityRanks {
		if sev != SeverityNone && strings.EqualFold(string(sev), s) {
			return sev, nil
		}
	}
	return SeverityNone, fmt.Errorf("unknown severity: %q", s)
}

// Kind names the rule that produced a finding.
type Kind string

const (
	KindUnsanitizedInput        Kind = "unsanitized_input"
	KindDangerousCommand        Kind = "dangerous_command"
	KindTOCTOURace              Kind = "toctou_race"
	KindUnsafeVariableExpansion Kind = "unsafe_variable_expansion"
	KindPathTraversalRisk       Kind = "path_traversal_risk"
	KindTmpfileRaceRisk         Kind = "tmpfile_race_risk"
	KindUnsafePathManipulation  Kind = "unsafe_path_manipulation"
	KindSensitiveInfoLeak       Kind = "sensitive_info_leak"
	KindWorldWritableFile       Kind = "world_writable_file"
	KindExternalInputToEval     Kind = "external_input_to_eval"
	KindEvalUsage               Kind = "eval_usage"
	KindPIDFileRaceRisk         Kind = "pid_file_race_risk"
	KindInfiniteLoggingRisk     Kind = "infinite_logging_risk"
	KindDelayedSelfDestruct     Kind = "delayed_self_destruct"
	KindBackgroundLockMonitor   Kind = "background_lock_monitor"
	KindAbuseOfCache            Kind = "abuse_of_cache"
	KindSilentFailure           Kind = "silent_failure"
	KindPIDCheckMasking         Kind = "pid_check_masking"
)

// Kinds returns every kind a scan can produce.
func Kinds() []Kind {
	return []Kind{
		KindUnsanitizedInput,
		KindDangerousCommand,
		KindTOCTOURace,
		KindUnsafeVariableExpansion,
		KindPathTraversalRisk,
		KindTmpfileRaceRisk,
		KindUnsafePathManipulation,
		KindSensitiveInfoLeak,
		KindWorldWritableFile,
		KindExternalInputToEval,
		KindEvalUsage,
		KindPIDFileRaceRisk,
		KindInfiniteLoggingRisk,
		KindDelayedSelfDestruct,
		KindBackgroundLockMonitor,
		KindAbuseOfCache,
		KindSilentFailure,
		KindPIDCheckMasking,
	}
}

// IsKnownKind reports whether k belongs to the detector registry.
func IsKnownKind(k Kind) bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Finding is one detected issue instance.
type Finding struct {
	Severity    Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	LineNumber  int      `json:"line_number" yaml:"line_number"`
	Code        string   `json:"code" yaml:"code"`
	Description string   `json:"description" yaml:"description"`
}

func (f Finding) String() string {
	sev := string(f.Severity)
	if sev == "" {
		sev = "-"
	}
	return fmt.Sprintf("[%s][%s] line %d: %s", sev, f.Kind, f.LineNumber, f.Description)
}

// newFinding builds a finding for the zero-based line index idx.
func newFinding(sev Severity, kind Kind, lines []string, idx int, description string) Finding {
	return Finding{
		Severity:    sev,
		Kind:        kind,
		LineNumber:  idx + 1,
		Code:        strings.TrimSpace(lines[idx]),
		Description: description,
	}
}
