// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"

	"carvel.dev/docsdropdown/pkg/docsdropdown/version"
	"github.com/cppforlife/cobrautil"
	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/spf13/cobra"
)

type DocsDropdownOptions struct {
	ui *ui.ConfUI

	UIFlags UIFlags
}

func NewDocsDropdownOptions(ui *ui.ConfUI) *DocsDropdownOptions {
	return &DocsDropdownOptions{ui: ui}
}

func NewDefaultDocsDropdownCmd(ui *ui.ConfUI) *cobra.Command {
	return NewDocsDropdownCmd(NewDocsDropdownOptions(ui))
}

func NewDocsDropdownCmd(o *DocsDropdownOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "docsdropdown",
		Short:             "docsdropdown adds a documentation version selector to generated guides",
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		Version:           version.Version,
	}

	cmd.SetOutput(uiBlockWriter{o.ui}) // setting output for cmd.Help()

	o.UIFlags.Set(cmd)

	cmd.AddCommand(NewGenerateCmd(NewGenerateOptions(o.ui)))
	cmd.AddCommand(NewFetchCmd(NewFetchOptions(o.ui)))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions(o.ui)))

	toolsCmd := NewToolsCmd()
	toolsCmd.AddCommand(NewSortVersionsCmd(NewSortVersionsOptions(o.ui)))
	toolsCmd.AddCommand(NewTimeBucketCmd(NewTimeBucketOptions(o.ui)))
	cmd.AddCommand(toolsCmd)

	// Last one runs first
	configureUI := func(*cobra.Command, []string) error {
		o.UIFlags.ConfigureUI(o.ui)
		return nil
	}

	cobrautil.VisitCommands(
		cmd,
		cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs,
		cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd),
		cobrautil.WrapRunEForCmd(configureUI),
	)

	return cmd
}

type uiBlockWriter struct {
	ui ui.UI
}

var _ io.Writer = uiBlockWriter{}

func (w uiBlockWriter) Write(p []byte) (n int, err error) {
	w.ui.PrintBlock(p)
	return len(p), nil
}
