// Command composite validates logical connectives and evaluates composite
// rules defined in YAML.
//
//	composite validate "[adult] && ([resident] || [sponsored])"
//	composite eval --rules rules.yaml --facts facts.yaml --fire
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
