// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoIncludesBuildFields(t *testing.T) {
	info := Info()
	for _, want := range []string{"word-scan", Version, GitCommit, Platform} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() = %q, missing %q", info, want)
		}
	}
}

func TestFullMatchesVariables(t *testing.T) {
	full := Full()
	if full["version"] != Short() {
		t.Errorf("version = %q, want %q", full["version"], Short())
	}
	if full["goVersion"] != GoVersion {
		t.Errorf("goVersion = %q, want %q", full["goVersion"], GoVersion)
	}
}
