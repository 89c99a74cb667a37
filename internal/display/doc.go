// Package display renders the utf8check report for the terminal.
//
// The report has a fixed shape. Before the walk:
//
//	Scanning directory: /abs/path
//
// After a clean walk:
//
//	✓ All files are valid UTF-8
//
// After a walk with findings (a blank line precedes the header and every
// entry):
//
//	Found files with invalid UTF-8 encoding:
//
//	File: /abs/path/sub/c.txt
//	Error: can't decode byte 0xff at offset 0: invalid start byte
//
// # Colors
//
// The success line is green and the findings header red when color is on.
// ColorEnabled turns a config color mode (auto, always, never) into a yes/no
// for a given writer; auto means "the writer is a terminal and NO_COLOR is
// unset". Text returns the same report without any ANSI codes, which is what
// goes into a report file.
package display
