// Command insights browses the world insights dataset in the terminal and
// serves it over a small read-only HTTP API.
package main

import (
	"os"
)

func main() {
	root, e := newRootCmd()
	err := root.Execute()
	e.finish(err)
	if err != nil {
		os.Exit(1)
	}
}
