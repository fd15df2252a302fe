package si

// Dimensionless is the unit of pure numbers. It is the default unit of ports
// that have no physical meaning.
var Dimensionless = Create()

// Base units.
var (
	Metre    = Create(Length(1))
	Kilogram = Create(Mass(1))
	Second   = Create(Time(1))
	Ampere   = Create(Current(1))
	Kelvin   = Create(Temperature(1))
	Mole     = Create(Amount(1))
	Candela  = Create(Luminosity(1))
)

// Derived units.
var (
	Watt   = Create(Length(2), Mass(1), Time(-3))
	Newton = Create(Length(1), Mass(1), Time(-2))
	Joule  = Create(Length(2), Mass(1), Time(-2))
	Volt   = Create(Length(2), Mass(1), Time(-3), Current(-1))
	Radian = Create(Angular())
)
