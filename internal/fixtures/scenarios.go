package fixtures

import "github.com/opensplit/feolattack/internal/model"

// dieSmall is the die area shared by every scenario below; none of them
// need more than a few thousand database units in either dimension.
var dieSmall = model.DieArea{Min: model.Point{X: 0, Y: 0}, Max: model.Point{X: 10000, Y: 10000}}

// C17 returns the ISCAS-85 c17 benchmark, fully routed (split_layer
// metal3, but nothing in this particular design actually crosses it, so
// the FEOL-only view already has every connection intact). Scenario S1:
// the attack should reproduce the original connectivity exactly, at zero
// cost, since every source/sink pair is already co-resident in the same
// net (case 1 of C5's cascade).
//
// Gate numbering follows the original benchmark: g10 = NAND(N1,N3),
// g11 = NAND(N3,N6), g16 = NAND(N2,net11), g19 = NAND(net11,N7),
// g22 = NAND(net10,net16) -> N22, g23 = NAND(net16,net19) -> N23.
func C17() *Builder {
	b := NewBuilder("c17", 3, dieSmall, "metal2", "via2")

	b.PrimaryPin("N1", model.Input, 0, 1000)
	b.PrimaryPin("N2", model.Input, 0, 2000)
	b.PrimaryPin("N3", model.Input, 0, 3000)
	b.PrimaryPin("N6", model.Input, 0, 4000)
	b.PrimaryPin("N7", model.Input, 0, 5000)
	b.PrimaryPin("N22", model.Output, 9000, 1500)
	b.PrimaryPin("N23", model.Output, 9000, 4500)

	b.Place("g10", "NAND2_X1", 2000, 1000)
	b.Place("g11", "NAND2_X1", 2000, 3000)
	b.Place("g16", "NAND2_X1", 4000, 2000)
	b.Place("g19", "NAND2_X1", 4000, 4500)
	b.Place("g22", "NAND2_X1", 7000, 1500)
	b.Place("g23", "NAND2_X1", 7000, 4000)

	b.Wired("N1", model.Point{X: 1000, Y: 1000}, PrimaryRef("N1"), CellPin("g10", "A"))
	b.Wired("N2", model.Point{X: 1000, Y: 2000}, PrimaryRef("N2"), CellPin("g16", "A"))
	b.Wired("N3", model.Point{X: 1000, Y: 3000}, PrimaryRef("N3"), CellPin("g10", "B"), CellPin("g11", "A"))
	b.Wired("N6", model.Point{X: 1000, Y: 4000}, PrimaryRef("N6"), CellPin("g11", "B"))
	b.Wired("N7", model.Point{X: 1000, Y: 5000}, PrimaryRef("N7"), CellPin("g19", "B"))

	b.Wired("net10", model.Point{X: 3000, Y: 1000}, CellPin("g10", "Y"), CellPin("g22", "A"))
	b.Wired("net11", model.Point{X: 3000, Y: 3000}, CellPin("g11", "Y"), CellPin("g16", "B"), CellPin("g19", "A"))
	b.Wired("net16", model.Point{X: 5000, Y: 2000}, CellPin("g16", "Y"), CellPin("g22", "B"), CellPin("g23", "A"))
	b.Wired("net19", model.Point{X: 5000, Y: 4500}, CellPin("g19", "Y"), CellPin("g23", "B"))

	b.Wired("N22", model.Point{X: 8000, Y: 1500}, CellPin("g22", "Y"), PrimaryRef("N22"))
	b.Wired("N23", model.Point{X: 8000, Y: 4000}, CellPin("g23", "Y"), PrimaryRef("N23"))

	return b
}

// TrivialInverter returns scenario S2: one INV_X1, primary input A driving
// it, primary output Z driven by it, split_layer metal2. Like S1 the net
// survives whole; the expected netlist is the single instance
// "INV_X1 u0 ( .A(A), .Z(Z) )".
func TrivialInverter() *Builder {
	b := NewBuilder("trivial_inverter", 2, dieSmall, "metal1", "via1")

	b.PrimaryPin("A", model.Input, 0, 5000)
	b.PrimaryPin("Z", model.Output, 9000, 5000)
	b.Place("u0", "INV_X1", 4000, 5000)

	b.Wired("A", model.Point{X: 2000, Y: 5000}, PrimaryRef("A"), CellPin("u0", "A"))
	b.Wired("Z", model.Point{X: 6000, Y: 5000}, CellPin("u0", "Z"), PrimaryRef("Z"))

	return b
}

// Ambiguity returns scenario S3: two inverters (u0, u1) whose outputs are
// both dangling candidates for the same dangling sink (u2's input A).
// u0 sits north of the sink with a direction rectangle that covers it;
// u1 sits farther north but approached from the same side as the sink
// itself, giving it a direction rectangle that does NOT cover the sink
// (case 4 is infeasible for u1) — so only u0 survives as a candidate,
// and it is also the geometrically closer one.
func Ambiguity() *Builder {
	b := NewBuilder("ambiguity", 3, dieSmall, "metal2", "via2")

	b.Place("u0", "INV_X1", 4800, 6000)
	b.Place("u1", "INV_X1", 4800, 9000)
	b.Place("u2", "INV_X1", 4800, 4800)

	b.PrimaryPin("IN0", model.Input, 0, 6000)
	b.PrimaryPin("IN1", model.Input, 0, 9000)
	b.PrimaryPin("OUT", model.Output, 9000, 4800)

	b.Wired("IN0", model.Point{X: 2000, Y: 6000}, PrimaryRef("IN0"), CellPin("u0", "A"))
	b.Wired("IN1", model.Point{X: 2000, Y: 9000}, PrimaryRef("IN1"), CellPin("u1", "A"))
	b.Wired("OUT", model.Point{X: 8000, Y: 4800}, CellPin("u2", "Z"), PrimaryRef("OUT"))

	// u0's output: the neighbor at Y=6200 lies north of the via point,
	// which restricts Max.Y to 6000, leaving Y in [0,6000] - that contains
	// the sink's via point at Y=4800.
	b.Dangling("u0_Z", CellPin("u0", "Z"), model.Point{X: 5000, Y: 6200}, model.Point{X: 5000, Y: 6000})
	// u1's output: approached from the south like the sink itself
	// (neighbor at smaller Y than the via point), restricting its
	// rectangle to Y >= 9000 - excludes the sink's Y=4800 entirely.
	b.Dangling("u1_Z", CellPin("u1", "Z"), model.Point{X: 5000, Y: 8800}, model.Point{X: 5000, Y: 9000})
	// sink: the neighbor at Y=4600 lies south of the via point, which
	// restricts Min.Y to 4800, giving Y in [4800,10000] - that contains
	// both u0's via point (Y=6000) and u1's (Y=9000).
	b.Dangling("u2_A", CellPin("u2", "A"), model.Point{X: 5000, Y: 4600}, model.Point{X: 5000, Y: 4800})

	return b
}

// LoopRejection returns scenario S4: u0 -> u1 -> u2 is already wired
// two hops deep (chain already knows u2 is a descendant of u0). u2's
// second input (B) is dangling next to u0, the nearest cell by
// placement; u0's output already drives u1 and, per C5 case 3's
// "second drive into an already-reachable gate" rule, is forbidden from
// fanning out to u2 too since u2 is already one of u0's descendants.
// The cheapest feasible driver is u3, a freestanding inverter placed
// farther away; primary input IN3 is also feasible but costs more.
func LoopRejection() *Builder {
	b := NewBuilder("loop_rejection", 3, dieSmall, "metal2", "via2")

	b.Place("u0", "INV_X1", 1000, 1000)
	b.Place("u1", "INV_X1", 2000, 1000)
	b.Place("u2", "NAND2_X1", 3000, 1000)
	b.Place("u3", "INV_X1", 9000, 9000)

	b.PrimaryPin("IN", model.Input, 0, 1000)
	b.PrimaryPin("IN3", model.Input, 9000, 9500)
	b.PrimaryPin("OUT", model.Output, 9000, 1000)

	b.Wired("IN", model.Point{X: 500, Y: 1000}, PrimaryRef("IN"), CellPin("u0", "A"))
	b.Wired("chain01", model.Point{X: 1500, Y: 1000}, CellPin("u0", "Z"), CellPin("u1", "A"))
	b.Wired("chain12", model.Point{X: 2500, Y: 1000}, CellPin("u1", "Z"), CellPin("u2", "A"))
	b.Wired("OUT", model.Point{X: 4000, Y: 1000}, CellPin("u2", "Y"), PrimaryRef("OUT"))
	b.Wired("IN3", model.Point{X: 9000, Y: 9400}, PrimaryRef("IN3"), CellPin("u3", "A"))

	// u2.B dangling, positioned close to where u0 sits; case 3 rejects u0
	// as its driver.
	b.Dangling("u2_B", CellPin("u2", "B"), model.Point{X: 1200, Y: 1800}, model.Point{X: 1200, Y: 2000})
	// u3's output, the cheapest feasible driver, much farther away.
	b.Dangling("u3_Z", CellPin("u3", "Z"), model.Point{X: 9000, Y: 8800}, model.Point{X: 9000, Y: 8600})

	return b
}

// InfeasiblePrimaryPairing returns scenario S5: a single primary input
// and a single primary output, with no gates at all, so the only
// candidate pairing is primary-to-primary - unconditionally infeasible
// under case 2 regardless of placement. No alternative exists, so the
// attack should report the output pin unresolved (exit code 2).
func InfeasiblePrimaryPairing() *Builder {
	b := NewBuilder("infeasible_primary", 1, dieSmall, "poly", "via0")
	b.PrimaryPin("IN", model.Input, 0, 0)
	b.PrimaryPin("OUT", model.Output, 10, 10)
	return b
}

// FanOutPreservation returns scenario S6: one inverter's output (u0.Z)
// dangling, with three separate sinks (u1.A, u2.A, u3.A) at increasing
// distance, none of which compete with each other for any other source.
// The minimum-cost assignment should recover all three edges, each at
// its own nearest distance, for a total cost equal to the sum of the
// three individual distances (so trivially <= that same sum).
func FanOutPreservation() *Builder {
	b := NewBuilder("fanout", 3, dieSmall, "metal2", "via2")

	b.Place("u0", "INV_X1", 1000, 5000)
	b.Place("u1", "INV_X1", 3000, 5000)
	b.Place("u2", "INV_X1", 5000, 5000)
	b.Place("u3", "INV_X1", 8000, 5000)

	b.PrimaryPin("IN", model.Input, 0, 5000)
	b.PrimaryPin("OUT1", model.Output, 3500, 6500)
	b.PrimaryPin("OUT2", model.Output, 5500, 6500)
	b.PrimaryPin("OUT3", model.Output, 8500, 6500)

	b.Wired("IN", model.Point{X: 500, Y: 5000}, PrimaryRef("IN"), CellPin("u0", "A"))
	b.Wired("OUT1", model.Point{X: 3200, Y: 6000}, CellPin("u1", "Z"), PrimaryRef("OUT1"))
	b.Wired("OUT2", model.Point{X: 5200, Y: 6000}, CellPin("u2", "Z"), PrimaryRef("OUT2"))
	b.Wired("OUT3", model.Point{X: 8200, Y: 6000}, CellPin("u3", "Z"), PrimaryRef("OUT3"))

	b.Dangling("u0_Z", CellPin("u0", "Z"), model.Point{X: 1000, Y: 4800}, model.Point{X: 1000, Y: 4600})
	b.Dangling("u1_A", CellPin("u1", "A"), model.Point{X: 3000, Y: 4800}, model.Point{X: 3000, Y: 4600})
	b.Dangling("u2_A", CellPin("u2", "A"), model.Point{X: 5000, Y: 4800}, model.Point{X: 5000, Y: 4600})
	b.Dangling("u3_A", CellPin("u3", "A"), model.Point{X: 8000, Y: 4800}, model.Point{X: 8000, Y: 4600})

	return b
}
