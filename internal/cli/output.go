package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printer writes coloured status lines. Colour is dropped automatically when
// the stream is not a terminal.
type printer struct {
	w       io.Writer
	success func(a ...interface{}) string
	failure func(a ...interface{}) string
	warning func(a ...interface{}) string
	accent  func(a ...interface{}) string
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:       w,
		success: color.New(color.FgGreen).SprintFunc(),
		failure: color.New(color.FgRed).SprintFunc(),
		warning: color.New(color.FgYellow).SprintFunc(),
		accent:  color.New(color.FgCyan).SprintFunc(),
	}
}

func (p *printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.success(fmt.Sprintf(format, args...)))
}

func (p *printer) Failure(format string, args ...any) {
	fmt.Fprintln(p.w, p.failure(fmt.Sprintf(format, args...)))
}

func (p *printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.w, p.warning(fmt.Sprintf(format, args...)))
}
