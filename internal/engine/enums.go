package engine

// String backed enums for DB interoperability and stable serialization.

type Mode string
type Policy string
type Pace string
type Diet string
type Weather string
type Region string
type Season string
type Part string
type DayKind string
type Ending string
type CampAction string

const (
	ModeStandard Mode = "standard"
	ModeDeep     Mode = "deep"
)

var AllModes = []Mode{ModeStandard, ModeDeep}

const (
	PolicyConservative Policy = "conservative"
	PolicyModerate     Policy = "moderate"
	PolicyAggressive   Policy = "aggressive"
)

var AllPolicies = []Policy{PolicyConservative, PolicyModerate, PolicyAggressive}

const (
	PaceSteady   Pace = "steady"
	PacePushing  Pace = "pushing"
	PaceGrueling Pace = "grueling"
)

var AllPaces = []Pace{PaceSteady, PacePushing, PaceGrueling}

const (
	DietFull   Diet = "full"
	DietMeager Diet = "meager"
	DietBust   Diet = "bust"
)

var AllDiets = []Diet{DietFull, DietMeager, DietBust}

const (
	WeatherClear    Weather = "clear"
	WeatherRain     Weather = "rain"
	WeatherColdSnap Weather = "cold_snap"
	WeatherStorm    Weather = "storm"
	WeatherHeatWave Weather = "heat_wave"
	WeatherSmoke    Weather = "smoke"
)

var AllWeather = []Weather{WeatherClear, WeatherRain, WeatherColdSnap, WeatherStorm, WeatherHeatWave, WeatherSmoke}

// IsExtreme reports whether the state counts against the extreme streak.
func (w Weather) IsExtreme() bool {
	return w == WeatherStorm || w == WeatherHeatWave || w == WeatherSmoke
}

const (
	RegionHeartland  Region = "heartland"
	RegionHighDesert Region = "high_desert"
	RegionRustBelt   Region = "rust_belt"
	RegionBeltway    Region = "beltway"
)

var AllRegions = []Region{RegionHeartland, RegionHighDesert, RegionRustBelt, RegionBeltway}

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

var AllSeasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

const (
	PartTire       Part = "tire"
	PartBattery    Part = "battery"
	PartAlternator Part = "alternator"
	PartFuelPump   Part = "fuel_pump"
)

var AllParts = []Part{PartTire, PartBattery, PartAlternator, PartFuelPump}

const (
	DayFull    DayKind = "full"
	DayPartial DayKind = "partial"
	DayStop    DayKind = "stop"
)

var AllDayKinds = []DayKind{DayFull, DayPartial, DayStop}

// Endings in strict precedence order; first match wins in SelectEnding.
const (
	EndingPantsed    Ending = "pantsed"     // pants ceiling reached
	EndingUnravelled Ending = "unravelled"  // sanity floor reached
	EndingDestitute  Ending = "destitute"   // hp or supplies exhausted
	EndingFloodedOut Ending = "flooded_out" // boss confrontation lost
	EndingVictory    Ending = "victory"
)

var AllEndings = []Ending{EndingPantsed, EndingUnravelled, EndingDestitute, EndingFloodedOut, EndingVictory}

const (
	CampRest   CampAction = "rest"
	CampForage CampAction = "forage"
	CampWrench CampAction = "wrench"
	CampShop   CampAction = "shop"
)

var AllCampActions = []CampAction{CampRest, CampForage, CampWrench, CampShop}

// Generic helpers
func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (m Mode) Validate() bool       { return contains(AllModes, m) }
func (p Policy) Validate() bool     { return contains(AllPolicies, p) }
func (p Pace) Validate() bool       { return contains(AllPaces, p) }
func (d Diet) Validate() bool       { return contains(AllDiets, d) }
func (w Weather) Validate() bool    { return contains(AllWeather, w) }
func (r Region) Validate() bool     { return contains(AllRegions, r) }
func (s Season) Validate() bool     { return contains(AllSeasons, s) }
func (p Part) Validate() bool       { return contains(AllParts, p) }
func (k DayKind) Validate() bool    { return contains(AllDayKinds, k) }
func (e Ending) Validate() bool     { return contains(AllEndings, e) }
func (a CampAction) Validate() bool { return contains(AllCampActions, a) }

// List helpers hand out copies of the canonical orderings for UI menus.
func ListModes() []Mode      { return append([]Mode{}, AllModes...) }
func ListPolicies() []Policy { return append([]Policy{}, AllPolicies...) }
func ListPaces() []Pace      { return append([]Pace{}, AllPaces...) }
func ListDiets() []Diet      { return append([]Diet{}, AllDiets...) }
func ListParts() []Part      { return append([]Part{}, AllParts...) }
