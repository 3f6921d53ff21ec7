// Package display renders user-facing terminal output: the candidate report
// of a run, warnings, and the token import progress indicator.
//
// Every function writes to an io.Writer. Colors come from fatih/color and are
// therefore dropped automatically when stdout is not a terminal or NO_COLOR
// is set.
//
//	display.WriteReport(os.Stdout, result)
//
//	w := display.WarnDuplicateTokens(tokens.FindDuplicates(list))
//	w.Display(os.Stderr)
package display
