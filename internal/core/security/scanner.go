package security

// Detector inspects the full line sequence of one script and returns the
// findings it is responsible for, in emission order.
type Detector func(lines []string) []Finding

// DefaultDetectors returns the detector battery in registration order.
func DefaultDetectors() []Detector {
	return []Detector{
		DetectUnsanitizedRead,
		DetectDangerousCommands,
		DetectTOCTOU,
		DetectUnsafeVariableExpansion,
		DetectPathTraversal,
		DetectTmpfileRace,
		DetectUnsafePathManipulation,
		DetectSensitiveLogging,
		DetectWorldWritableChmod,
		DetectEvalInjection,
		DetectPIDFileRace,
		DetectInfiniteLogging,
		DetectDelayedSelfDestruct,
		DetectBackgroundLockMonitor,
		DetectCacheAbuse,
		DetectSilentFailure,
		DetectPIDCheckMasking,
	}
}

// Scanner runs a fixed, ordered list of detectors over a script.
type Scanner struct {
	detectors []Detector
}

// NewScanner creates a scanner. Without arguments it uses DefaultDetectors.
func NewScanner(detectors ...Detector) *Scanner {
	if len(detectors) == 0 {
		detectors = DefaultDetectors()
	}
	return &Scanner{detectors: detectors}
}

// Scan runs every detector in registration order and returns the accumulated
// findings. An empty result means nothing was found. lines is never modified.
func (s *Scanner) Scan(lines []string) []Finding {
	findings := make([]Finding, 0)
	for _, detect := range s.detectors {
		findings = append(findings, detect(lines)...)
	}
	return findings
}

// Scan runs the default detector battery over lines.
func Scan(lines []string) []Finding {
	return NewScanner().Scan(lines)
}
