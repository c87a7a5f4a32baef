package physics

import (
	"time"

	. "gopkg.in/check.v1"
)

type SolarSuite struct{}

var _ = Suite(&SolarSuite{})

func (s *SolarSuite) TestSolarDeclination(c *C) {
	checkClose(c, SolarDeclination(172), 23.45, 0.05, Commentf("summer solstice"))
	checkClose(c, SolarDeclination(356), -23.45, 0.05, Commentf("winter solstice"))
	checkClose(c, SolarDeclination(81), 0.0, 0.5, Commentf("spring equinox"))
}

func (s *SolarSuite) TestEquationOfTime(c *C) {
	// EoT stays within roughly ±17 minutes all year.
	for day := 1; day <= 365; day += 7 {
		eot := EquationOfTime(day)
		c.Check(eot > -17.0 && eot < 17.0, Equals, true, Commentf("day %d: %g", day, eot))
	}
}

func (s *SolarSuite) TestHourAngle(c *C) {
	c.Check(HourAngle(12.0), Equals, 0.0)
	c.Check(HourAngle(10.0), Equals, -30.0)
	c.Check(HourAngle(15.0), Equals, 45.0)
}

func (s *SolarSuite) TestSolarPositionSummerNoon(c *C) {
	pos := ComputeSolarPosition(37.3, -78.4, time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC))
	c.Check(pos.Altitude > 70.0, Equals, true, Commentf("altitude %g", pos.Altitude))
	c.Check(pos.Zenith, Equals, 90.0-pos.Altitude)
	checkClose(c, pos.Declination, 23.45, 0.05, Commentf("declination"))
}

func (s *SolarSuite) TestSolarPositionNight(c *C) {
	pos := ComputeSolarPosition(37.3, -78.4, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	c.Check(pos.Altitude < 0, Equals, true)
}

func (s *SolarSuite) TestSolarPositionPolar(c *C) {
	// Polar night: the sun never rises at 80°N in December.
	for hour := 0; hour < 24; hour += 3 {
		pos := ComputeSolarPosition(80.0, 0.0, time.Date(2025, 12, 21, hour, 0, 0, 0, time.UTC))
		c.Check(pos.Altitude < 0, Equals, true, Commentf("hour %d", hour))
	}
	// Midnight sun: the sun never sets at 80°N in June.
	for hour := 0; hour < 24; hour += 3 {
		pos := ComputeSolarPosition(80.0, 0.0, time.Date(2025, 6, 21, hour, 0, 0, 0, time.UTC))
		c.Check(pos.Altitude > 0, Equals, true, Commentf("hour %d", hour))
	}
}

func (s *SolarSuite) TestExtraterrestrialRadiation(c *C) {
	checkClose(c, ExtraterrestrialRadiation(1), 1412.0, 2.0, Commentf("perihelion"))
	checkClose(c, ExtraterrestrialRadiation(182), 1322.0, 2.0, Commentf("aphelion"))
}

func (s *SolarSuite) TestAirMass(c *C) {
	checkClose(c, AirMass(90.0), 1.0, 0.01, Commentf("zenith"))
	checkClose(c, AirMass(30.0), 2.0, 0.05, Commentf("30°"))
	c.Check(AirMass(0.0), Equals, 40.0)
	c.Check(AirMass(-10.0), Equals, 40.0)
}

func (s *SolarSuite) TestDirectNormalIrradiance(c *C) {
	c.Check(DirectNormalIrradiance(-5.0, 172, 2.0), Equals, 0.0)

	noon := DirectNormalIrradiance(60.0, 172, 2.0)
	c.Check(noon > 800.0 && noon < 1200.0, Equals, true, Commentf("clear noon %g", noon))

	// Hazier atmosphere attenuates more.
	c.Check(DirectNormalIrradiance(60.0, 172, 3.0) < noon, Equals, true)
	// Lower sun attenuates more.
	c.Check(DirectNormalIrradiance(10.0, 172, 2.0) < noon, Equals, true)
}

func (s *SolarSuite) TestDiffuseFractionErbs(c *C) {
	// Overcast sky is all diffuse, clear sky mostly direct.
	checkClose(c, DiffuseFractionErbs(0.0), 1.0, 1e-9, Commentf("overcast"))
	checkClose(c, DiffuseFractionErbs(0.9), 0.165, 1e-9, Commentf("clear"))
	// Continuity at the kt=0.22 boundary.
	checkClose(c, DiffuseFractionErbs(0.22), 1.0-0.09*0.22, 1e-9, Commentf("boundary"))

	// Monotone non-increasing over the middle branch.
	prev := DiffuseFractionErbs(0.25)
	for kt := 0.30; kt <= 0.80; kt += 0.05 {
		cur := DiffuseFractionErbs(kt)
		c.Check(cur <= prev+1e-9, Equals, true, Commentf("kt=%g", kt))
		prev = cur
	}
}

func (s *SolarSuite) TestClearnessIndex(c *C) {
	c.Check(ClearnessIndex(500.0, 0.0), Equals, 0.0)
	c.Check(ClearnessIndex(2000.0, 1367.0), Equals, 1.0)
	checkClose(c, ClearnessIndex(683.5, 1367.0), 0.5, 1e-9, Commentf("half"))
}

func (s *SolarSuite) TestRadiationOnTiltedSurface(c *C) {
	c.Check(RadiationOnTiltedSurface(800, 100, -5, 180, 30, 180, 0.2), Equals, 0.0)

	// Horizontal surface recovers the global horizontal irradiance.
	flat := RadiationOnTiltedSurface(800, 100, 45, 180, 0, 180, 0.2)
	ghi := GlobalHorizontalIrradiance(800, 100, 45)
	checkClose(c, flat, ghi, 1e-9, Commentf("horizontal"))

	// A south-facing tilt beats horizontal when the sun is low in the south.
	tilted := RadiationOnTiltedSurface(800, 100, 30, 180, 40, 180, 0.2)
	flatLow := RadiationOnTiltedSurface(800, 100, 30, 180, 0, 180, 0.2)
	c.Check(tilted > flatLow, Equals, true)
}

func (s *SolarSuite) TestPARFromSolar(c *C) {
	checkClose(c, PARFromSolar(1000.0), 2056.5, 0.1, Commentf("full sun"))
	checkClose(c, PARFromSolar(500.0), 1028.25, 0.1, Commentf("cloudy"))
	c.Check(PARFromSolar(0.0), Equals, 0.0)
}

func (s *SolarSuite) TestSunriseSunset(c *C) {
	sunrise, sunset := SunriseSunset(37.3, 172)
	c.Check(sunrise < 6.0, Equals, true, Commentf("sunrise %g", sunrise))
	c.Check(sunset > 18.0, Equals, true, Commentf("sunset %g", sunset))
	checkClose(c, sunrise+sunset, 24.0, 1e-9, Commentf("symmetric about noon"))

	sunrise, sunset = SunriseSunset(80.0, 355)
	c.Check(sunrise, Equals, 12.0)
	c.Check(sunset, Equals, 12.0)

	sunrise, sunset = SunriseSunset(80.0, 172)
	c.Check(sunrise, Equals, 0.0)
	c.Check(sunset, Equals, 24.0)
}

func (s *SolarSuite) TestDiffuseRadiation(c *C) {
	c.Check(DiffuseRadiation(500, 800, -5), Equals, 0.0)
	c.Check(DiffuseRadiation(0, 800, 45), Equals, 0.0)
	// Never negative even when beam exceeds GHI.
	c.Check(DiffuseRadiation(100, 800, 60), Equals, 0.0)
	checkClose(c, DiffuseRadiation(600, 400, 30), 400.0, 1e-9, Commentf("remainder"))
}
