// Command pmfield is a small command line front end to the pseudo-Mersenne field arithmetic of this module.
//
// It lists the available fields, evaluates single field operations and shows the compiled exponentiation chains.
// Custom fields, the log level and the output format can be set in a YAML config file (--config) or by
// environment variables with prefix PMFIELD_, e.g. PMFIELD_LOGLEVEL=debug.
package main

import (
	"os"
)

func main() {
	if err := execute(newRootCmd(os.Stdout, os.Stderr), os.Stderr); err != nil {
		os.Exit(1)
	}
}
