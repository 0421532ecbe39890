package tableopts

// Severity expresses how a parse-time finding is handled.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures duplicate-key enforcement while a document is built.
type Strictness struct {
	// OnDuplicateKey: Ignore keeps every occurrence (the decoder then applies
	// last-occurrence-wins), Warn keeps them and reports issues, Error rejects
	// the document.
	OnDuplicateKey Severity
}

// ParseOpt bundles document parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 = unlimited
	MaxBytes   int64 // 0 = unlimited
}

// ParseSeverity maps "ignore", "warn" and "error" to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "ignore", "":
		return Ignore, true
	case "warn":
		return Warn, true
	case "error":
		return Error, true
	}
	return Ignore, false
}

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}
