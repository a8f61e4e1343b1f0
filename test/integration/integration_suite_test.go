//go:build integration

// Package integration runs the full pipeline against the real solver
// backends. The backends link native OR-Tools and GLPK libraries, so
// these tests only run with the integration build tag:
//
//	go test -tags integration ./test/integration/...
package integration

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Integration Suite")
}
