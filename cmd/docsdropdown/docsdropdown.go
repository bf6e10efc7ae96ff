// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"carvel.dev/docsdropdown/pkg/docsdropdown/cmd"
	"carvel.dev/docsdropdown/pkg/docsdropdown/logging"
	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = logging.NewLogger(os.Stderr)

	confUI := ui.NewConfUI(logging.NewUILogger(log.Logger))
	defer confUI.Flush()

	command := cmd.NewDefaultDocsDropdownCmd(confUI)

	err := command.Execute()
	if err != nil {
		confUI.ErrorLinef("docsdropdown: Error: %v", err)
		confUI.Flush()
		os.Exit(1)
	}

	confUI.PrintLinef("Succeeded")
}
