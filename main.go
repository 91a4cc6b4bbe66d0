// Package main is the entry point for the srcmap CLI.
package main

import "srcmap.dev/pkg/srcmap/cmd"

func main() {
	cmd.Execute()
}
