package security

// Policy defines how findings are reported and when commands need confirmation.
type Policy struct {
	// CommandLevel determines when commands require confirmation.
	// "always" - every command requires confirmation
	// "dangerous" - only dangerous commands require confirmation
	// "never" - no confirmation required
	CommandLevel ConfirmLevel `mapstructure:"command_level"`

	// MinSeverity hides findings ranked below it. Empty keeps everything,
	// including findings without a severity.
	MinSeverity Severity `mapstructure:"min_severity"`

	// DisabledKinds lists finding kinds that are never reported.
	DisabledKinds []Kind `mapstructure:"disabled_kinds"`
}

// ConfirmLevel represents the command confirmation level.
type ConfirmLevel string

const (
	ConfirmAlways    ConfirmLevel = "always"
	ConfirmDangerous ConfirmLevel = "dangerous"
	ConfirmNever     ConfirmLevel = "never"
)

// DefaultPolicy returns the default policy: every finding, confirm dangerous commands.
func DefaultPolicy() *Policy {
	return &Policy{
		CommandLevel:  ConfirmDangerous,
		MinSeverity:   SeverityNone,
		DisabledKinds: []Kind{},
	}
}

// Filter returns the findings this policy reports, preserving order.
func (p *Policy) Filter(findings []Finding) []Finding {
	disabled := make(map[Kind]bool, len(p.DisabledKinds))
	for _, k := range p.DisabledKinds {
		disabled[k] = true
	}

	kept := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if disabled[f.Kind] {
			continue
		}
		if f.Severity.Rank() < p.MinSeverity.Rank() {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
