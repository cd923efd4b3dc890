package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

func Fail(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Error.Render("✖ "+msg))
}

func Hint(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Muted.Render("Hint: "+msg))
}
