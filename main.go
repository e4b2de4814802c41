package main

import "github.com/scijava/status.scijava.org/cmd"

func main() {
	cmd.Execute()
}
