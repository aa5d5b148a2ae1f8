package orchestrator

import "github.com/halvard/duplifind/core/record"

// ScanError is returned by Scan when the call fails before any analysis
// work starts (§6 Exit conditions, §7 BAD_ARGUMENT policy).
type ScanError struct {
	Kind    record.ErrorKind
	Message string
}

func (e *ScanError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func badArgument(message string) *ScanError {
	return &ScanError{Kind: record.ErrorBadArgument, Message: message}
}
