package broadcast

import "time"

const UnknownAge = "edad desconocida"

// AgeBucket agrupa la edad para el resumen: cachorro < 1 año, joven < 3,
// adulto < 8, senior el resto.
func AgeBucket(birth *time.Time, now time.Time) string {
	if birth == nil || birth.IsZero() || birth.After(now) {
		return UnknownAge
	}
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	switch {
	case years < 1:
		return "cachorro"
	case years < 3:
		return "joven"
	case years < 8:
		return "adulto"
	default:
		return "senior"
	}
}
