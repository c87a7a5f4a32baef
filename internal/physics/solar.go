package physics

import (
	"math"
	"time"
)

// SolarPosition holds the solar position angles, all in degrees. Altitude
// is 0 at the horizon and 90 at zenith, azimuth is measured clockwise from
// North.
type SolarPosition struct {
	Altitude    float64
	Azimuth     float64
	Zenith      float64
	Declination float64
	HourAngle   float64
}

func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// SolarDeclination computes the angle between the equatorial plane and the
// Earth-Sun line, ASHRAE Handbook-Fundamentals Chapter 14.
func SolarDeclination(day int) float64 {
	angle := radians(360.0 * float64(284+day) / 365.0)
	return EarthAxialTilt * math.Sin(angle)
}

// EquationOfTime returns the solar time correction in minutes accounting
// for orbital eccentricity and axial tilt.
func EquationOfTime(day int) float64 {
	b := radians(360.0 * float64(day-81) / 364.0)
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// SolarTime converts local standard time to apparent solar time in decimal
// hours. The standard meridian is estimated from the longitude when not
// otherwise known.
func SolarTime(t time.Time, longitude float64) float64 {
	standardMeridian := math.Round(longitude/15.0) * 15.0
	lst := float64(t.Hour()) + float64(t.Minute())/60.0 + float64(t.Second())/3600.0
	eot := EquationOfTime(DayOfYear(t))
	longitudeCorrection := 4.0 * (standardMeridian - longitude)
	return lst + eot/60.0 - longitudeCorrection/60.0
}

// HourAngle is the angular displacement of the sun from the local meridian,
// negative before solar noon.
func HourAngle(solarTime float64) float64 {
	return 15.0 * (solarTime - 12.0)
}

// ComputeSolarPosition returns the solar angles for a location and local
// standard time. It remains well-defined at polar latitudes, where the
// altitude simply stays negative through the polar night.
func ComputeSolarPosition(latitude, longitude float64, t time.Time) SolarPosition {
	n := DayOfYear(t)
	decl := SolarDeclination(n)
	declRad := radians(decl)
	ha := HourAngle(SolarTime(t, longitude))
	haRad := radians(ha)
	latRad := radians(latitude)

	sinAlt := math.Sin(latRad)*math.Sin(declRad) +
		math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	sinAlt = math.Max(-1.0, math.Min(1.0, sinAlt))
	altitude := degrees(math.Asin(sinAlt))

	azimuth := 180.0
	cosAlt := math.Cos(radians(altitude))
	if cosAlt > 0.001 {
		cosAz := (sinAlt*math.Sin(latRad) - math.Sin(declRad)) / (cosAlt * math.Cos(latRad))
		cosAz = math.Max(-1.0, math.Min(1.0, cosAz))
		azimuth = degrees(math.Acos(cosAz))
		if ha > 0 {
			azimuth = 360.0 - azimuth
		}
	}

	return SolarPosition{
		Altitude:    altitude,
		Azimuth:     azimuth,
		Zenith:      90.0 - altitude,
		Declination: decl,
		HourAngle:   ha,
	}
}

// ExtraterrestrialRadiation is the solar constant corrected for the
// Earth-Sun distance variation, in W/m².
func ExtraterrestrialRadiation(day int) float64 {
	angle := radians(360.0 * float64(day) / 365.0)
	return SolarConstant * (1.0 + 0.033*math.Cos(angle))
}

// ClearnessIndex is the ratio of global horizontal irradiance to
// extraterrestrial radiation, clamped to [0,1].
func ClearnessIndex(ghi, extraterrestrial float64) float64 {
	if extraterrestrial <= 0 {
		return 0.0
	}
	return math.Max(0.0, math.Min(1.0, ghi/extraterrestrial))
}

// AirMass computes the relative atmospheric path length with the
// Kasten-Young formula. At or below the horizon a large fixed value is
// returned.
func AirMass(altitude float64) float64 {
	if altitude <= 0 {
		return 40.0
	}
	zenith := 90.0 - altitude
	return 1.0 / (math.Cos(radians(zenith)) + 0.50572*math.Pow(96.07995-zenith, -1.6364))
}

// DirectNormalIrradiance under a clear sky, in W/m². Turbidity 2.0 is a
// clear atmosphere, 3.0 hazy.
func DirectNormalIrradiance(altitude float64, day int, turbidity float64) float64 {
	if altitude <= 0 {
		return 0.0
	}
	eo := ExtraterrestrialRadiation(day)
	zenithRad := radians(90.0 - altitude)
	var m float64
	if altitude > 5 {
		m = 1.0 / math.Cos(zenithRad)
	} else {
		m = AirMass(altitude)
	}
	tauB := 0.2 + 0.1*turbidity*math.Cos(radians(360.0*float64(day-172)/365.0))
	return math.Max(0.0, eo*math.Exp(-tauB*m))
}

// DiffuseRadiation is the diffuse horizontal irradiance left once the
// direct beam contribution is removed from the global irradiance.
func DiffuseRadiation(ghi, dni, altitude float64) float64 {
	if altitude <= 0 || ghi <= 0 {
		return 0.0
	}
	directHorizontal := dni * math.Sin(radians(altitude))
	return math.Max(0.0, ghi-directHorizontal)
}

// DiffuseFractionErbs computes the diffuse fraction of global irradiance
// from the clearness index, Erbs, Klein and Duffie (1982).
func DiffuseFractionErbs(kt float64) float64 {
	if kt <= 0.22 {
		return 1.0 - 0.09*kt
	}
	if kt <= 0.80 {
		return 0.9511 - 0.1604*kt + 4.388*kt*kt - 16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	}
	return 0.165
}

// GlobalHorizontalIrradiance combines direct and diffuse components on a
// horizontal surface.
func GlobalHorizontalIrradiance(dni, diffuse, altitude float64) float64 {
	if altitude <= 0 {
		return diffuse
	}
	return dni*math.Sin(radians(altitude)) + diffuse
}

// RadiationOnTiltedSurface combines beam, isotropic sky diffuse and ground
// reflected components on a tilted surface. Tilt is 0 for horizontal, 90
// for vertical.
func RadiationOnTiltedSurface(dni, diffuse, altitude, azimuth, tilt, surfaceAzimuth, groundReflectance float64) float64 {
	if altitude <= 0 {
		return 0.0
	}
	altRad := radians(altitude)
	azRad := radians(azimuth)
	tiltRad := radians(tilt)
	surfAzRad := radians(surfaceAzimuth)

	cosTheta := math.Sin(altRad)*math.Cos(tiltRad) +
		math.Cos(altRad)*math.Sin(tiltRad)*math.Cos(azRad-surfAzRad)
	cosTheta = math.Max(0.0, cosTheta)

	beam := dni * cosTheta
	diffuseTilted := diffuse * (1 + math.Cos(tiltRad)) / 2
	ghi := GlobalHorizontalIrradiance(dni, diffuse, altitude)
	groundReflected := ghi * groundReflectance * (1 - math.Cos(tiltRad)) / 2

	return beam + diffuseTilted + groundReflected
}

// PARFromSolar converts total solar radiation in W/m² to the
// photosynthetically active photon flux in µmol/(m².s).
func PARFromSolar(solarRadiation float64) float64 {
	return solarRadiation * PARFraction * PARConversionFactor
}

// SunriseSunset returns the sunrise and sunset in decimal solar hours.
// Polar night yields (12,12) and midnight sun (0,24).
func SunriseSunset(latitude float64, day int) (float64, float64) {
	decl := SolarDeclination(day)
	cosWs := -math.Tan(radians(latitude)) * math.Tan(radians(decl))
	if cosWs >= 1 {
		return 12.0, 12.0
	}
	if cosWs <= -1 {
		return 0.0, 24.0
	}
	ws := degrees(math.Acos(cosWs))
	return 12.0 - ws/15.0, 12.0 + ws/15.0
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
