// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package e2e_test

import (
	"testing"

	ginkgo "github.com/onsi/ginkgo/v2"
)

func TestE2e(t *testing.T) {
	ginkgo.RunSpecs(t, "ammvm e2e test suites")
}
