// Package main provides the CLI for the projfile build-description tool.
package main

import "github.com/buildgraph/projfile/internal/cli"

func main() {
	cli.Execute()
}
