package lint

// Severity defines the importance of a finding.
type Severity uint8

const (
	// SevInfo is for informational findings.
	SevInfo Severity = iota
	// SevWarning is for warning findings.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity maps an engine-reported severity name to its enum value.
// Unknown names fall back to SevInfo.
func ParseSeverity(s string) Severity {
	switch s {
	case "ERROR", "error", "Error":
		return SevError
	case "WARNING", "warning", "Warning":
		return SevWarning
	}
	return SevInfo
}
