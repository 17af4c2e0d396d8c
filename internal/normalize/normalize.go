// Package normalize converts free-form upstream completion text into the
// structured {message, command, trader} envelope. The upstream model is asked
// for strict JSON but does not reliably produce it, so parsing is a three-stage
// pipeline: strict parse, deterministic repair, verbatim pass-through. The
// pipeline never fails; a turn that reached this layer is always "success".
package normalize

import (
	"encoding/json"
	"strings"
)

// Stage identifies which pipeline stage produced the result.
type Stage int

const (
	// StageStrict means the raw text parsed as-is.
	StageStrict Stage = iota
	// StageRepair means the text parsed after the cleanup pass.
	StageRepair
	// StagePassThrough means parsing failed twice and the raw text was kept
	// verbatim as the message.
	StagePassThrough
)

func (s Stage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageRepair:
		return "repair"
	default:
		return "passthrough"
	}
}

// Fields holds the three expected keys. Keys absent from the payload stay nil
// rather than failing the parse.
type Fields struct {
	Message *string `json:"message"`
	Command *string `json:"command"`
	Trader  *string `json:"trader"`
}

// Parse runs the pipeline over the raw assistant text.
func Parse(raw string) (Fields, Stage) {
	var f Fields
	if err := json.Unmarshal([]byte(raw), &f); err == nil {
		return f, StageStrict
	}

	f = Fields{}
	if err := json.Unmarshal([]byte(Repair(raw)), &f); err == nil {
		return f, StageRepair
	}

	msg := raw
	return Fields{Message: &msg}, StagePassThrough
}

// Repair applies the fixed cleanup for the two malformations the upstream
// model actually produces: backtick/whitespace fencing around the object, and
// a trailing comma immediately before the closing brace (LF or CRLF). Applying
// Repair to already-repaired text is a no-op.
func Repair(raw string) string {
	cleaned := strings.Trim(raw, "` \n")
	cleaned = strings.ReplaceAll(cleaned, ",\n}", "\n}")
	cleaned = strings.ReplaceAll(cleaned, ",\r\n}", "\r\n}")
	cleaned = strings.ReplaceAll(cleaned, ",}", "}")
	return cleaned
}
