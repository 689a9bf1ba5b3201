package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testdata/script/*.txtar invoke the bc binary directly as
// the `bc` command (rogpeppe/go-internal/testscript is the de facto
// standard for testing a Go CLI's exit codes and stdout/stderr end to end
// without shelling out to `go run`).
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"bc": run,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
