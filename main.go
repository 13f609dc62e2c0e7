// Package main is the entry point for the draftmetrics CLI, which imports
// recorded MOBA pick/ban drafts and computes draft analytics over them.
package main

import "github.com/pable/go-draft-metrics/cmd"

func main() {
	cmd.Execute()
}
