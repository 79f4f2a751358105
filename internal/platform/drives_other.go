// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package platform

import "errors"

func driveRoots() ([]string, error) {
	return nil, errors.New("drive enumeration is only available on Windows")
}
