package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ColorEnv overrides --color when set.
const ColorEnv = "JOBRADAR_COLOR"

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) paint(output *termenv.Output, msg string, color string) string {
	msg = strings.TrimRight(msg, "\n")
	if !u.ColorEnabled {
		return msg
	}
	return output.String(msg).Foreground(output.Color(color)).String()
}

func (u *UI) Errorf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, fmt.Sprintf(format, args...), "1"))
}

func (u *UI) Warnf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, fmt.Sprintf(format, args...), "3"))
}

func (u *UI) Infof(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, fmt.Sprintf(format, args...), "4"))
}

func (u *UI) Successf(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, fmt.Sprintf(format, args...), "2"))
}

// Summaryf writes a machine-greppable line to stderr so stdout stays clean
// for --json.
func (u *UI) Summaryf(format string, args ...any) {
	fmt.Fprintln(u.Err, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// IsTTY reports whether w is a terminal that understands escape codes.
func IsTTY(w io.Writer) bool {
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}

// Spinner draws a single status line on stderr while a batch runs. It is a
// no-op when stderr is not a terminal.
type Spinner struct {
	w       io.Writer
	mu      sync.Mutex
	label   string
	done    chan struct{}
	stopped chan struct{}
}

func (u *UI) StartSpinner(label string) *Spinner {
	s := &Spinner{w: u.Err, label: label}
	if u.Err == nil || !IsTTY(u.Err) {
		return s
	}

	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.loop()
	return s
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	start := time.Now()
	frames := []string{"|", "/", "-", "\\"}
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for index := 0; ; index++ {
		select {
		case <-s.done:
			fmt.Fprint(s.w, "\r\033[2K")
			return
		case <-ticker.C:
			s.mu.Lock()
			label := s.label
			s.mu.Unlock()
			fmt.Fprintf(s.w, "\r\033[2K%s %ds %s", label, int(time.Since(start).Seconds()), frames[index%len(frames)])
		}
	}
}

// SetLabel replaces the text shown next to the spinner.
func (s *Spinner) SetLabel(label string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

func (s *Spinner) Label() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

func (s *Spinner) Stop() {
	if s == nil || s.done == nil {
		return
	}
	close(s.done)
	<-s.stopped
	s.done = nil
}

func NormalizeColorMode(value string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case ColorAlways:
		return ColorAlways
	case ColorNever:
		return ColorNever
	default:
		return ColorAuto
	}
}
