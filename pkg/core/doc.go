// Package core provides the fundamental data structures for the production
// plan optimization engine.
//
// This package contains the domain model that represents the entities and
// relationships of the planning problem:
//
//   - ProductType: a product that can be produced, with its yield per
//     resource unit
//   - ResourceType: a unit of production capacity
//   - Period: a totally ordered discrete planning time unit
//   - PlanningData: one immutable snapshot of demand, supply, cost and
//     compatibility for a single analysis/solve cycle
//
// These types form the foundation for the feasibility checks in the
// feasibility package and the integer-program construction in the
// formulation package. A PlanningData instance is built once by a data
// loading collaborator, validated with Validate, and then consumed
// read-only; there is no cross-run state.
//
// Example usage:
//
//	data := &core.PlanningData{
//		Products:  []core.ProductType{{ID: "plain", Yield: 10}},
//		Resources: []core.ResourceType{{ID: "small"}},
//		Periods:   []core.Period{{ID: "week1", Seq: 1}},
//		Demand:    map[core.DemandKey]int{{Product: "plain", Period: "week1"}: 50},
//		Supply:    map[core.SupplyKey]int{{Resource: "small", Period: "week1"}: 60},
//		Allowed:   map[core.PairKey]bool{{Product: "plain", Resource: "small"}: true},
//	}
//	if err := data.Validate(); err != nil {
//		return err
//	}
package core
