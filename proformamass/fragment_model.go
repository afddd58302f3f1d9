package proformamass

// IonSeries names one of the backbone/glycan ion series spec.md §4.6
// enumerates.
type IonSeries int

const (
	IonA IonSeries = iota
	IonB
	IonC
	IonX
	IonY
	IonZ
	IonZPlus1
	IonD
	IonV
	IonW
	IonGlycanB
	IonGlycanY
	IonOxonium
	IonImmonium
	IonDiagnostic
	IonPrecursor
)

func (s IonSeries) String() string {
	switch s {
	case IonA:
		return "a"
	case IonB:
		return "b"
	case IonC:
		return "c"
	case IonX:
		return "x"
	case IonY:
		return "y"
	case IonZ:
		return "z"
	case IonZPlus1:
		return "z+1"
	case IonD:
		return "d"
	case IonV:
		return "v"
	case IonW:
		return "w"
	case IonGlycanB:
		return "B"
	case IonGlycanY:
		return "Y"
	case IonOxonium:
		return "oxonium"
	case IonImmonium:
		return "immonium"
	case IonDiagnostic:
		return "diagnostic"
	case IonPrecursor:
		return "precursor"
	}
	return "?"
}

// SeriesLocation restricts where a backbone ion series may be
// generated, per spec.md §4.6's per-series location policy (e.g. c/z
// ions commonly suppressed near a terminus by instrument convention).
type SeriesLocation struct {
	MinIndex int // 0-based distance from the series' originating terminus
	MaxIndex int // -1 means unbounded
}

func (l SeriesLocation) allows(index int) bool {
	if index < l.MinIndex {
		return false
	}
	if l.MaxIndex >= 0 && index > l.MaxIndex {
		return false
	}
	return true
}

// SeriesConfig is one backbone ion series' configuration: whether it
// fires at all, its location policy, and the neutral losses the
// generator should also emit for it.
type SeriesConfig struct {
	Enabled       bool
	Location      SeriesLocation
	NeutralLosses []MolecularFormula
}

// MassMode selects which MolecularFormula mass function the generator
// reports fragment m/z in, per spec.md §4.6's mass_mode.
type MassMode int

const (
	MassModeMonoisotopic MassMode = iota
	MassModeAverage
	MassModeMostAbundant
)

func (mode MassMode) massOf(f MolecularFormula) float64 {
	switch mode {
	case MassModeAverage:
		return f.AverageWeight()
	case MassModeMostAbundant:
		return f.MostAbundantMass()
	default:
		return f.MonoisotopicMass()
	}
}

// ToleranceKind distinguishes an absolute-Da tolerance from a
// parts-per-million one.
type ToleranceKind int

const (
	ToleranceAbsolute ToleranceKind = iota
	TolerancePPM
)

// Tolerance is the window annotation.go uses to match a fragment m/z
// against an observed peak, per spec.md §4.6/§4.8.
type Tolerance struct {
	Kind  ToleranceKind
	Value float64
}

// windowAt returns the [low, high] m/z bounds a fragment with the
// given theoretical m/z is allowed to match within.
func (t Tolerance) windowAt(mz float64) (float64, float64) {
	if t.Kind == TolerancePPM {
		delta := mz * t.Value / 1e6
		return mz - delta, mz + delta
	}
	return mz - t.Value, mz + t.Value
}

// MzRange bounds which fragment m/z values the generator keeps, per
// spec.md §4.6's mz_range.
type MzRange struct {
	Min, Max float64
}

func (r MzRange) contains(mz float64) bool {
	return mz >= r.Min && mz <= r.Max
}

// FragmentationModel is the fully configured set of knobs the
// generator walks a Peptidoform with. It has far more independent
// optional settings than any constructor in the teacher's package, so
// it is built with the functional-options pattern (this module's one
// ambient-stack deviation from the teacher's plain-struct-literal
// convention, justified in SPEC_FULL.md §2) rather than a single
// all-fields literal.
type FragmentationModel struct {
	Series             map[IonSeries]SeriesConfig
	GlycanEnabled       bool
	GlycanMaxBranches   int
	PeptideChargeRange  [2]int32
	OxoniumChargeRange  [2]int32
	OtherChargeRange    [2]int32
	PrecursorLosses     []MolecularFormula
	MzRange             MzRange
	Tolerance           Tolerance
	MassMode            MassMode
	AdductSpecies       []chargeOption
}

// ModelOption configures a FragmentationModel under construction.
type ModelOption func(*FragmentationModel)

// WithSeries enables one backbone series (a/b/c/x/y/z/z+1/d/v/w) with
// the given configuration. GenerateFragments reads only backbone
// series from Series: glycan ions are switched by WithGlycans, and
// immonium, diagnostic and precursor ions are emitted regardless.
func WithSeries(series IonSeries, cfg SeriesConfig) ModelOption {
	return func(m *FragmentationModel) { m.Series[series] = cfg }
}

// WithGlycans toggles glycan B/Y/oxonium ion emission and bounds how
// many of a glycan's top-level branches the B-ion walk considers
// (matching SeriesLocation.MaxIndex's convention: -1 means unbounded,
// any non-negative value is an explicit cap, including 0 to emit no
// branch B ions at all).
func WithGlycans(enabled bool, maxBranches int) ModelOption {
	return func(m *FragmentationModel) {
		m.GlycanEnabled = enabled
		m.GlycanMaxBranches = maxBranches
	}
}

// WithChargeRanges sets the [min, max] charge states explored for
// peptide backbone ions, oxonium ions, and everything else
// (diagnostic/precursor) respectively.
func WithChargeRanges(peptide, oxonium, other [2]int32) ModelOption {
	return func(m *FragmentationModel) {
		m.PeptideChargeRange = peptide
		m.OxoniumChargeRange = oxonium
		m.OtherChargeRange = other
	}
}

// WithPrecursorLosses adds neutral losses considered for the unfragmented
// precursor ion itself (e.g. loss of labile modifications).
func WithPrecursorLosses(losses ...MolecularFormula) ModelOption {
	return func(m *FragmentationModel) { m.PrecursorLosses = append(m.PrecursorLosses, losses...) }
}

// WithMzRange bounds reported fragment m/z values.
func WithMzRange(min, max float64) ModelOption {
	return func(m *FragmentationModel) { m.MzRange = MzRange{Min: min, Max: max} }
}

// WithTolerance sets the matching tolerance used by annotation.go.
func WithTolerance(t Tolerance) ModelOption {
	return func(m *FragmentationModel) { m.Tolerance = t }
}

// WithMassMode selects monoisotopic, average, or most-abundant mass
// reporting.
func WithMassMode(mode MassMode) ModelOption {
	return func(m *FragmentationModel) { m.MassMode = mode }
}

// WithAdducts overrides the adduct species charge enumeration searches
// (module M); defaults to protons only (up to 6 per ion).
func WithAdducts(species []chargeOption) ModelOption {
	return func(m *FragmentationModel) { m.AdductSpecies = species }
}

// defaultBackboneSeries mirrors the commonly observed HCD/CID/ETD
// defaults (b/y always on; c/z on but unrestricted; a/x/d/v/w off by
// default since they're typically minor or instrument-specific),
// matching the "sensible defaults, override via options" convention
// SPEC_FULL.md §2 calls for.
func defaultBackboneSeries() map[IonSeries]SeriesConfig {
	always := SeriesLocation{MinIndex: 0, MaxIndex: -1}
	return map[IonSeries]SeriesConfig{
		IonB: {Enabled: true, Location: always},
		IonY: {Enabled: true, Location: always},
		IonC: {Enabled: true, Location: always},
		IonZ: {Enabled: true, Location: always},
	}
}

// NewFragmentationModel builds a model from sensible defaults (b/y/c/z
// backbone ions, protons-only charge 1-2, absolute 0.01 Da tolerance,
// monoisotopic mass mode, no glycan ions) and applies opts in order.
func NewFragmentationModel(opts ...ModelOption) FragmentationModel {
	m := FragmentationModel{
		Series:             defaultBackboneSeries(),
		PeptideChargeRange: [2]int32{1, 2},
		OxoniumChargeRange: [2]int32{1, 1},
		OtherChargeRange:   [2]int32{1, 1},
		MzRange:            MzRange{Min: 0, Max: 1e9},
		Tolerance:          Tolerance{Kind: ToleranceAbsolute, Value: 0.01},
		MassMode:           MassModeMonoisotopic,
		AdductSpecies:      []chargeOption{{name: "proton", formula: protonFormula(), maxCount: 6}},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}
