package stream

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// CommandType represents the verb of a decoded command line.
type CommandType uint8

const (
	CmdCPUs   CommandType = iota + 1 // set the CPU pool size
	CmdJob                           // admit a job
	CmdAssign                        // assign CPUs to waiting jobs
	CmdQuery                         // historical queue query
)

func (t CommandType) String() string {
	switch t {
	case CmdCPUs:
		return "cpus"
	case CmdJob:
		return "job"
	case CmdAssign:
		return "assign"
	case CmdQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Command is one decoded line of the input stream. Only the fields for
// its Type are meaningful.
type Command struct {
	Type CommandType

	CPUs uint64 // CmdCPUs

	TS          uint64 // CmdJob, CmdAssign, CmdQuery
	ProcessID   uint64 // CmdJob
	Origin      string // CmdJob
	Instruction string // CmdJob
	Importance  int    // CmdJob
	Duration    uint64 // CmdJob

	K uint64 // CmdAssign; CmdQuery in top-K mode

	TopK        bool   // CmdQuery: true = top-K selector, false = origin filter
	OriginMatch string // CmdQuery in origin mode
}

// ParseCommand decodes one whitespace-separated command line.
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "cpus":
		if len(fields) != 2 {
			return nil, fmt.Errorf("cpus: want 1 argument, got %d", len(fields)-1)
		}
		n, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cpus: parse count: %w", err)
		}
		return &Command{Type: CmdCPUs, CPUs: n}, nil

	case "job":
		if len(fields) != 7 {
			return nil, fmt.Errorf("job: want 6 arguments, got %d", len(fields)-1)
		}
		ts, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("job: parse timestamp: %w", err)
		}
		pid, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("job: parse process id: %w", err)
		}
		imp, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("job: parse importance: %w", err)
		}
		if imp < 1 || imp > 100 {
			return nil, fmt.Errorf("job: importance %d out of range [1, 100]", imp)
		}
		dur, err := strconv.ParseUint(fields[6], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("job: parse duration: %w", err)
		}
		return &Command{
			Type:        CmdJob,
			TS:          ts,
			ProcessID:   pid,
			Origin:      fields[3],
			Instruction: fields[4],
			Importance:  imp,
			Duration:    dur,
		}, nil

	case "assign":
		if len(fields) != 3 {
			return nil, fmt.Errorf("assign: want 2 arguments, got %d", len(fields)-1)
		}
		ts, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("assign: parse timestamp: %w", err)
		}
		k, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("assign: parse count: %w", err)
		}
		return &Command{Type: CmdAssign, TS: ts, K: k}, nil

	case "query":
		if len(fields) != 3 {
			return nil, fmt.Errorf("query: want 2 arguments, got %d", len(fields)-1)
		}
		ts, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("query: parse timestamp: %w", err)
		}
		// The selector modes are distinguished by the presence of any
		// alphabetic character: "5" is a top-K count, "sysA" an origin.
		if containsAlphabet(fields[2]) {
			return &Command{Type: CmdQuery, TS: ts, OriginMatch: fields[2]}, nil
		}
		k, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("query: parse selector: %w", err)
		}
		return &Command{Type: CmdQuery, TS: ts, TopK: true, K: k}, nil

	default:
		return nil, fmt.Errorf("unknown command %q", fields[0])
	}
}

func containsAlphabet(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
