// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"time"
)

const CacheInterval = time.Hour

// TimeBucket truncates now to the start of its cache interval in unix seconds.
func TimeBucket(now time.Time) int64 {
	secs := int64(CacheInterval / time.Second)
	unix := now.Unix()

	bucket := unix / secs
	if unix%secs < 0 {
		bucket--
	}
	return bucket * secs
}
