package main

import (
	"fmt"
	"os"

	"github.com/atomic-ehr/fhirpath-go/cmd/fhirpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
