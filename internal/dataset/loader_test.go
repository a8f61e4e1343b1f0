package dataset_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bakeops/production-plan-optimizer/internal/dataset"
	"github.com/bakeops/production-plan-optimizer/pkg/core"
)

const validDataset = `
products:
  - id: plain
    yield: 10
    cost:
      small: 1.0
      large: 2.0
  - id: deluxe
    yield: 8
    cost:
      small: 3.0
      large: 1.5
resources:
  - small
  - large
periods:
  - week1
  - week2
demand:
  plain:
    week1: 100
    week2: 150
  deluxe:
    week1: 50
    week2: 75
supply:
  small:
    week1: 120
    week2: 100
  large:
    week1: 80
    week2: 90
allowed:
  plain: [small, large]
  deluxe: [small, large]
`

var _ = Describe("Parse", func() {
	It("loads a complete dataset", func() {
		data, err := dataset.Parse([]byte(validDataset))
		Expect(err).NotTo(HaveOccurred())

		Expect(data.Products).To(HaveLen(2))
		Expect(data.Products[0].ID).To(Equal("plain"))
		Expect(data.Products[0].Yield).To(Equal(10.0))
		Expect(data.Resources).To(HaveLen(2))

		Expect(data.DemandAt("plain", "week2")).To(Equal(150))
		Expect(data.SupplyAt("large", "week1")).To(Equal(80))
		Expect(data.Cost[core.PairKey{Product: "deluxe", Resource: "large"}]).To(Equal(1.5))
		Expect(data.IsAllowed("plain", "small")).To(BeTrue())

		Expect(data.Validate()).To(Succeed())
	})

	It("assigns period sequence from declaration order", func() {
		data, err := dataset.Parse([]byte(validDataset))
		Expect(err).NotTo(HaveOccurred())

		Expect(data.Periods).To(HaveLen(2))
		Expect(data.Periods[0]).To(Equal(core.Period{ID: "week1", Seq: 1}))
		Expect(data.Periods[1]).To(Equal(core.Period{ID: "week2", Seq: 2}))
	})

	It("drops zero demand and supply entries", func() {
		raw := `
products:
  - id: p
    yield: 1
resources: [r]
periods: [w1]
demand:
  p:
    w1: 0
supply:
  r:
    w1: 0
allowed:
  p: [r]
`
		data, err := dataset.Parse([]byte(raw))
		Expect(err).NotTo(HaveOccurred())
		Expect(data.Demand).To(BeEmpty())
		Expect(data.Supply).To(BeEmpty())
	})

	DescribeTable("rejects malformed datasets",
		func(raw string, fragment string) {
			_, err := dataset.Parse([]byte(raw))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(fragment))
		},
		Entry("invalid yaml", "products: [", "parsing dataset"),
		Entry("duplicate product", `
products:
  - id: p
    yield: 1
  - id: p
    yield: 2
resources: [r]
periods: [w1]
`, `duplicate product "p"`),
		Entry("duplicate period", `
products:
  - id: p
    yield: 1
resources: [r]
periods: [w1, w1]
`, `duplicate period "w1"`),
		Entry("unknown resource in allowed", `
products:
  - id: p
    yield: 1
resources: [r]
periods: [w1]
allowed:
  p: [ghost]
`, "references unknown resource"),
		Entry("unknown product in demand", `
products:
  - id: p
    yield: 1
resources: [r]
periods: [w1]
demand:
  ghost:
    w1: 5
`, `demand references unknown product "ghost"`),
		Entry("unknown period in supply", `
products:
  - id: p
    yield: 1
resources: [r]
periods: [w1]
supply:
  r:
    w9: 5
`, "references unknown period"),
		Entry("negative demand", `
products:
  - id: p
    yield: 1
resources: [r]
periods: [w1]
demand:
  p:
    w1: -3
`, "negative demand"),
		Entry("negative cost", `
products:
  - id: p
    yield: 1
    cost:
      r: -0.5
resources: [r]
periods: [w1]
`, "negative cost"),
	)
})

var _ = Describe("Load", func() {
	It("reads a dataset file from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "plan.yaml")
		Expect(os.WriteFile(path, []byte(validDataset), 0o600)).To(Succeed())

		data, err := dataset.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data.Products).To(HaveLen(2))
	})

	It("fails on a missing file", func() {
		_, err := dataset.Load(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("reading dataset"))
	})
})
