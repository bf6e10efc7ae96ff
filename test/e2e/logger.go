// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package e2e

import (
	"fmt"
	"os"
	"strings"
)

type Logger struct{}

func (l Logger) Section(msg string, f func()) {
	fmt.Printf("==> %s\n", msg)
	f()
}

func (l Logger) Debugf(msg string, args ...interface{}) {
	if strings.EqualFold(os.Getenv("DOCSDROPDOWN_E2E_DEBUG"), "true") {
		fmt.Printf(msg, args...)
	}
}
