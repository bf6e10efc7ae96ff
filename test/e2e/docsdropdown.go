// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package e2e

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
)

type DocsDropdown struct {
	t          *testing.T
	binaryPath string
	l          Logger
}

type RunOpts struct {
	AllowError  bool
	StdinReader io.Reader
	Dir         string
	Env         []string
}

type RunResult struct {
	Stdout string
	Stderr string
}

func (d DocsDropdown) Run(args []string) string {
	res, _ := d.RunWithOpts(args, RunOpts{})
	return res.Stdout
}

func (d DocsDropdown) RunWithOpts(args []string, opts RunOpts) (RunResult, error) {
	d.l.Debugf("Running '%s'...\n", d.cmdDesc(args))

	cmd := exec.Command(d.binaryPath, args...)
	// Ignore any token from the developer environment
	cmd.Env = append(os.Environ(), "DOCSDROPDOWN_GITHUB_API_TOKEN=")
	cmd.Env = append(cmd.Env, opts.Env...)
	cmd.Stdin = opts.StdinReader

	if len(opts.Dir) > 0 {
		cmd.Dir = opts.Dir
	}

	var stderr, stdout bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &stdout

	err := cmd.Run()
	res := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		err = fmt.Errorf("Execution error: stdout: '%s' stderr: '%s' error: '%s'", res.Stdout, res.Stderr, err)

		if !opts.AllowError {
			d.t.Fatalf("Failed to successfully execute '%s': %v", d.cmdDesc(args), err)
		}
	}

	return res, err
}

func (d DocsDropdown) cmdDesc(args []string) string {
	return fmt.Sprintf("docsdropdown %s", strings.Join(args, " "))
}
