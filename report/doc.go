// Package report turns a ranking into something a reviewer reads.
//
// A Report is built once per run with New and can then be rendered any
// number of times:
//
//	rep := report.New(ranked, report.WithStrategies(blend.Strategies()))
//	err := report.Text{}.Render(os.Stdout, rep)
//
// Text renders a terminal table, JSON an indented document and PDF a
// printable report with a methodology page.
package report
