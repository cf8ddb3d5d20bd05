package tui

import "io"

func SuccessIcon(out io.Writer) string {
	return Paint(out, SuccessStyle, "✔")
}

func WarningIcon(out io.Writer) string {
	return Paint(out, WarningStyle, "!")
}

func ErrorIcon(out io.Writer) string {
	return Paint(out, ErrorStyle, "✘")
}
