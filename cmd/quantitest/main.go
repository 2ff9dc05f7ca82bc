// Package main provides the entry point for the quantitest CLI.
//
// quantitest walks an operator through a Quanti-Test skin prick allergy test
// in the terminal, from kit verification to the results summary.
//
// Usage:
//
//	quantitest            start the guided test
//	quantitest export     write the results bundle without the TUI
//
// See --help for all available options.
package main

func main() {
	Execute()
}
