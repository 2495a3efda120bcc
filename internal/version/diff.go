// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package version

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// SnapshotDiff renders a human-readable diff between two canonical snapshot
// strings, with deletions and insertions highlighted.
func SnapshotDiff(prior, current string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(prior, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
