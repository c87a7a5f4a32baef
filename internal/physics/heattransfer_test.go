package physics

import (
	. "gopkg.in/check.v1"
)

type HeatTransferSuite struct{}

var _ = Suite(&HeatTransferSuite{})

func (s *HeatTransferSuite) TestConduction(c *C) {
	c.Check(ConductionHeatTransfer(4.0, 100.0, 20.0, 5.0), Equals, 6000.0)
	// Sign flips with the gradient.
	c.Check(ConductionHeatTransfer(4.0, 100.0, 5.0, 20.0), Equals, -6000.0)
	c.Check(ConductionHeatTransfer(4.0, 100.0, 20.0, 20.0), Equals, 0.0)
}

func (s *HeatTransferSuite) TestConductionResistance(c *C) {
	r, err := ConductionResistance(0.05, 0.04)
	c.Assert(err, IsNil)
	checkClose(c, r, 1.25, 1e-9, Commentf("insulation layer"))

	_, err = ConductionResistance(0.05, 0.0)
	c.Check(err, NotNil)
}

func (s *HeatTransferSuite) TestOverallUValue(c *C) {
	// No layers: film coefficients only.
	u := OverallUValue(nil, 8.3, 23.0)
	checkClose(c, u, 1.0/(1.0/8.3+1.0/23.0), 1e-9, Commentf("films only"))

	// Adding resistance lowers U.
	c.Check(OverallUValue([]float64{0.5}, 8.3, 23.0) < u, Equals, true)
}

func (s *HeatTransferSuite) TestDimensionlessNumbers(c *C) {
	gr := GrashofNumber(30.0, 20.0, 1.0)
	c.Check(gr > 1e8 && gr < 1e10, Equals, true, Commentf("Gr %g", gr))
	checkClose(c, RayleighNumber(30.0, 20.0, 1.0), gr*PrandtlAir, 1e-6, Commentf("Ra = Gr Pr"))
	checkClose(c, ReynoldsNumber(3.0, 1.0), 200000.0, 1.0, Commentf("Re"))

	// Grashof is symmetric in the temperature difference.
	c.Check(GrashofNumber(20.0, 30.0, 1.0), Equals, gr)
}

func (s *HeatTransferSuite) TestNaturalConvection(c *C) {
	// No temperature difference: floor value.
	c.Check(NaturalConvectionCoefficient(20.0, 20.0, 1.0, Vertical), Equals, 0.5)

	h := NaturalConvectionCoefficient(30.0, 20.0, 1.0, Vertical)
	c.Check(h > 1.0 && h < 10.0, Equals, true, Commentf("vertical %g", h))

	// Hot plate facing up convects more than facing down.
	up := NaturalConvectionCoefficient(30.0, 20.0, 1.0, HorizontalUp)
	down := NaturalConvectionCoefficient(30.0, 20.0, 1.0, HorizontalDown)
	c.Check(up > down, Equals, true)

	// Larger temperature difference, larger h.
	c.Check(NaturalConvectionCoefficient(40.0, 20.0, 1.0, Vertical) > h, Equals, true)
}

func (s *HeatTransferSuite) TestForcedConvection(c *C) {
	c.Check(ForcedConvectionCoefficient(0.0, 1.0, FlatPlate), Equals, 0.5)

	laminar := ForcedConvectionCoefficient(1.0, 1.0, FlatPlate)
	turbulent := ForcedConvectionCoefficient(10.0, 1.0, FlatPlate)
	c.Check(laminar > 0.5, Equals, true)
	c.Check(turbulent > laminar, Equals, true)

	cyl := ForcedConvectionCoefficient(3.0, 0.1, Cylinder)
	c.Check(cyl > 0.5, Equals, true, Commentf("cylinder %g", cyl))
}

func (s *HeatTransferSuite) TestMixedConvection(c *C) {
	// Blend is dominated by the larger component and bounded by their sum.
	h := MixedConvectionCoefficient(3.0, 4.0)
	c.Check(h > 4.0 && h < 7.0, Equals, true, Commentf("mixed %g", h))
	checkClose(c, MixedConvectionCoefficient(5.0, 0.0), 5.0, 1e-9, Commentf("pure natural"))
	checkClose(c, MixedConvectionCoefficient(0.0, 5.0), 5.0, 1e-9, Commentf("pure forced"))
}

func (s *HeatTransferSuite) TestRadiation(c *C) {
	q := RadiationHeatTransfer(0.9, 100.0, 20.0, -10.0)
	checkClose(c, q, 13217.0, 10.0, Commentf("20°C surface, -10°C sky"))
	// Zero exchange at equal temperatures, sign flip when reversed.
	c.Check(RadiationHeatTransfer(0.9, 100.0, 20.0, 20.0), Equals, 0.0)
	c.Check(RadiationHeatTransfer(0.9, 100.0, -10.0, 20.0), Equals, -q)

	hr := RadiationCoefficient(0.9, 20.0, -10.0)
	// Q = h_r A ΔT must reproduce the Stefan-Boltzmann result.
	checkClose(c, hr*100.0*30.0, q, 1e-3, Commentf("linearized"))
}

func (s *HeatTransferSuite) TestSkyTemperature(c *C) {
	// Clear sky is well below ambient.
	clear, err := SkyTemperature(20.0, 50.0, 0.0)
	c.Assert(err, IsNil)
	c.Check(clear < 15.0, Equals, true, Commentf("clear %g", clear))

	// Overcast sky approaches ambient.
	overcast, err := SkyTemperature(20.0, 50.0, 1.0)
	c.Assert(err, IsNil)
	c.Check(overcast > clear, Equals, true)
	c.Check(overcast < 20.0, Equals, true)

	// Higher humidity raises the clear sky emissivity.
	humid, err := SkyTemperature(20.0, 90.0, 0.0)
	c.Assert(err, IsNil)
	c.Check(humid > clear, Equals, true)
}

func (s *HeatTransferSuite) TestViewFactor(c *C) {
	c.Check(ViewFactorToSky(0.0), Equals, 1.0)
	checkClose(c, ViewFactorToSky(90.0), 0.5, 1e-9, Commentf("vertical"))
	checkClose(c, ViewFactorToSky(180.0), 0.0, 1e-9, Commentf("facing down"))
}

func (s *HeatTransferSuite) TestGroundTemperature(c *C) {
	// Deep ground stays near the annual mean.
	deep := GroundTemperatureAtDepth(15.0, 10.0, 180, 5.0)
	checkClose(c, deep, 15.0, 2.0, Commentf("5 m deep"))

	// Surface model swings the full amplitude.
	winter := GroundSurfaceTemperature(15.0, 10.0, 35)
	summer := GroundSurfaceTemperature(15.0, 10.0, 35+182)
	checkClose(c, winter, 5.0, 0.1, Commentf("coldest day"))
	checkClose(c, summer, 25.0, 0.1, Commentf("warmest day"))

	// Depth damps the swing.
	shallowWinter := GroundTemperatureAtDepth(15.0, 10.0, 35, 0.5)
	c.Check(shallowWinter > winter, Equals, true)
}

func (s *HeatTransferSuite) TestSurfaceHeatBalance(c *C) {
	c.Check(SurfaceHeatBalance(1000.0, 200.0, 300.0, 100.0), Equals, 400.0)
	c.Check(SurfaceHeatBalance(0.0, 200.0, 300.0, 100.0), Equals, -600.0)
}
