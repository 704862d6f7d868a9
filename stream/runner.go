package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/scheduler"
	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/scheduler/job"
)

// Runner consumes a command stream line by line and drives the
// scheduler, writing one description line per emitted job. Commands are
// processed strictly sequentially in stream order; the runner owns the
// scheduler for its lifetime.
type Runner struct {
	sched  *scheduler.Scheduler
	log    *logrus.Logger
	strict bool
}

// NewRunner wires a runner to the given scheduler. With strict set, a
// malformed line aborts the run; otherwise it is skipped with a warning.
func NewRunner(sched *scheduler.Scheduler, log *logrus.Logger, strict bool) *Runner {
	return &Runner{sched: sched, log: log, strict: strict}
}

// Run reads commands from in until EOF, writing emitted job lines to
// out. Blank lines are ignored.
func (r *Runner) Run(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	w := bufio.NewWriter(out)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			if r.strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			r.log.WithFields(logrus.Fields{
				"component": "stream",
				"line":      lineNo,
			}).WithError(err).Warn("skipping malformed command")
			continue
		}
		if err := r.dispatch(cmd, w); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading command stream: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	waiting, assigned, free := r.sched.Stats()
	r.log.WithFields(logrus.Fields{
		"component": "stream",
		"lines":     lineNo,
		"waiting":   waiting,
		"assigned":  assigned,
		"free_cpus": free,
	}).Debug("command stream drained")
	return nil
}

// dispatch applies one command and writes whatever it emits.
func (r *Runner) dispatch(cmd *Command, w *bufio.Writer) error {
	switch cmd.Type {
	case CmdCPUs:
		r.sched.InitCPUs(cmd.CPUs)
		return nil
	case CmdJob:
		r.sched.Admit(cmd.TS, cmd.ProcessID, cmd.Origin, cmd.Instruction, cmd.Importance, cmd.Duration)
		return nil
	case CmdAssign:
		return writeJobs(w, r.sched.Assign(cmd.TS, cmd.K))
	case CmdQuery:
		if cmd.TopK {
			return writeJobs(w, r.sched.QueryTopK(cmd.TS, cmd.K))
		}
		return writeJobs(w, r.sched.QueryOrigin(cmd.TS, cmd.OriginMatch))
	default:
		return fmt.Errorf("unhandled command type %d", cmd.Type)
	}
}

func writeJobs(w *bufio.Writer, jobs []*job.Job) error {
	for _, j := range jobs {
		if _, err := w.WriteString(j.Description()); err != nil {
			return fmt.Errorf("writing job line: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing job line: %w", err)
		}
	}
	return nil
}
