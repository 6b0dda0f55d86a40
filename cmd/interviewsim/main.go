package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // All personas passed
	ExitPersonaFailed = 1 // One or more personas failed evaluation
	ExitError         = 2 // Configuration or runtime error
)

// PersonaFailureError indicates that the regression run itself succeeded,
// but one or more personas scored below the pass threshold.
type PersonaFailureError struct {
	Message string
}

func (e *PersonaFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var failureErr *PersonaFailureError
		if errors.As(err, &failureErr) {
			os.Exit(ExitPersonaFailed)
		}

		os.Exit(ExitError)
	}
}
