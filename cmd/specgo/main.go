package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs the specgo CLI and returns its exit code. It is factored out
// of main so that testscript.RunMain can invoke it in-process.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
