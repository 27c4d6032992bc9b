// Package main is the entry point for the slnforge CLI.
package main

import "slnforge.dev/pkg/slnforge/cmd"

func main() {
	cmd.Execute()
}
