// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/spf13/cobra"
)

type TimeBucketOptions struct {
	ui  ui.UI
	now func() time.Time
}

func NewTimeBucketOptions(ui ui.UI) *TimeBucketOptions {
	return &TimeBucketOptions{ui: ui, now: time.Now}
}

func NewTimeBucketCmd(o *TimeBucketOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time-bucket",
		Short: "Print the hourly cache-busting timestamp used for generated pages",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	return cmd
}

func (o *TimeBucketOptions) Run() error {
	o.ui.PrintLinef("%d", dropdown.TimeBucket(o.now()))
	return nil
}
