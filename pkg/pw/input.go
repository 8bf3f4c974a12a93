package pw

// Input is the complete input file for pw.x.
//
// The structure follows the principle that only valid states are
// representable: fields which must be given together are bundled into one
// value (see Efield), mutually exclusive choices are sealed interfaces with one
// implementation per choice, and optional namelist fields are pointers that
// are omitted from the output when nil. Properties the types cannot express,
// such as positivity of thresholds and cutoffs, are checked by Validate.
//
// The counts nat and ntyp are derived from AtomicPositions and Species and are
// never stored.
type Input struct {
	// Calculation selects scf, nscf or bands together with its convergence
	// threshold and band options.
	Calculation Calculation

	Control Control
	System  System

	// Efield holds the sawtooth electric field. Its fields are rendered into
	// both the &control and &system namelists.
	Efield Efield

	Electrons Electrons
	Species   []Species

	// AtomicPositions is required for nscf and bands calculations too, where
	// pw.x ignores it, since nat is derived from it.
	AtomicPositions AtomicPositions

	KPoints KPoints
}

// Calculation is one of Scf, Nscf or Bands.
type Calculation interface {
	Value() string
	isCalculation()
}

// Scf is a self-consistent calculation.
type Scf struct {
	ConvThr float64
}

// Nscf is a non-self-consistent calculation on a fixed charge density.
type Nscf struct {
	DiagoThrInit float64
	Nbnd         *uint64
	Nosym        *bool
}

// Bands is a band structure calculation along a k-point path.
type Bands struct {
	DiagoThrInit float64
	Nbnd         *uint64
	Nosym        *bool
}

func (Scf) Value() string   { return "scf" }
func (Nscf) Value() string  { return "nscf" }
func (Bands) Value() string { return "bands" }

func (Scf) isCalculation()   {}
func (Nscf) isCalculation()  {}
func (Bands) isCalculation() {}

// Control holds the optional &control fields. A nil field is left to the
// pw.x default.
type Control struct {
	RestartMode *RestartMode
	DiskIO      *DiskIO
	WfCollect   *bool
	PseudoDir   *string
	OutDir      *string
	Prefix      *string
}

// RestartMode is the value of restart_mode.
type RestartMode string

const (
	RestartFromScratch RestartMode = "from_scratch"
	RestartRestart     RestartMode = "restart"
)

// Value returns the namelist text for r.
func (r RestartMode) Value() string { return string(r) }

// DiskIO is the value of disk_io.
type DiskIO string

const (
	DiskIOLow    DiskIO = "low"
	DiskIOMedium DiskIO = "medium"
	DiskIOHigh   DiskIO = "high"
	DiskIONone   DiskIO = "none"
)

// Value returns the namelist text for d.
func (d DiskIO) Value() string { return string(d) }

// System holds the &system fields. Ecutrho is required even though pw.x has
// a default, since that default is wrong for ultrasoft and PAW
// pseudopotentials.
type System struct {
	Ibrav       Ibrav
	Alat        float64
	Ecutwfc     float64
	Ecutrho     float64
	Occupations Occupations
	SpinType    SpinType
}

// Ibrav selects the Bravais lattice.
//
// Only the free lattice, given by an explicit cell, is supported. The fixed
// presets (simple cubic, fcc, bcc, hexagonal, ...) would each carry the celldm
// values after celldm(1), which is always Alat.
type Ibrav interface {
	Value() string
	isIbrav()
}

// Free is ibrav=0: the lattice is given by CELL_PARAMETERS.
type Free struct {
	Cell Cell
}

func (Free) Value() string { return "0" }
func (Free) isIbrav()      {}

// Cell is the CELL_PARAMETERS card. Rows are lattice vectors.
type Cell struct {
	Units LatticeUnits
	Cell  [3][3]float64
}

// LatticeUnits is the unit option of CELL_PARAMETERS.
type LatticeUnits string

const (
	LatticeBohr     LatticeUnits = "bohr"
	LatticeAngstrom LatticeUnits = "angstrom"
	LatticeAlat     LatticeUnits = "alat"
)

// Value returns the card option text for u.
func (u LatticeUnits) Value() string { return string(u) }

// Occupations is one of Smearing, Tetrahedra, TetrahedraLin, TetrahedraOpt
// or Fixed.
type Occupations interface {
	Value() string
	isOccupations()
}

// Smearing occupations always come with the smearing width degauss.
type Smearing struct {
	Kind    SmearingKind
	Degauss float64
}

type (
	Tetrahedra    struct{}
	TetrahedraLin struct{}
	TetrahedraOpt struct{}
	Fixed         struct{}
)

func (Smearing) Value() string      { return "smearing" }
func (Tetrahedra) Value() string    { return "tetrahedra" }
func (TetrahedraLin) Value() string { return "tetrahedra_lin" }
func (TetrahedraOpt) Value() string { return "tetrahedra_opt" }
func (Fixed) Value() string         { return "fixed" }

func (Smearing) isOccupations()      {}
func (Tetrahedra) isOccupations()    {}
func (TetrahedraLin) isOccupations() {}
func (TetrahedraOpt) isOccupations() {}
func (Fixed) isOccupations()         {}

// SmearingKind is the value of smearing.
type SmearingKind string

const (
	SmearingGaussian          SmearingKind = "gaussian"
	SmearingMethfesselPaxton  SmearingKind = "methfessel-paxton"
	SmearingMarzariVanderbilt SmearingKind = "marzari-vanderbilt"
	SmearingFermiDirac        SmearingKind = "fermi-dirac"
)

// Value returns the namelist text for k.
func (k SmearingKind) Value() string { return string(k) }

// SpinType is the spin representation: NonPolarized (nspin=1),
// CollinearPolarized (nspin=2) or Noncollinear (noncolin=.true. with
// lspinorb from SpinOrbit).
type SpinType interface {
	isSpinType()
}

type (
	NonPolarized       struct{}
	CollinearPolarized struct{}
	Noncollinear       struct {
		SpinOrbit bool
	}
)

func (NonPolarized) isSpinType()       {}
func (CollinearPolarized) isSpinType() {}
func (Noncollinear) isSpinType()       {}

// Efield is an applied electric field. Only the sawtooth potential is
// supported; a finite homogeneous field (lelfield) would be a second variant.
type Efield interface {
	isEfield()
}

// TeField is the sawtooth potential. Enabling it requires all of edir,
// emaxpos, eopreg and eamp, so they are bundled here.
type TeField struct {
	Dipfield bool
	Edir     LatticeDirection
	Emaxpos  float64
	Eopreg   float64
	Eamp     float64
}

func (TeField) isEfield() {}

// LatticeDirection is the reciprocal lattice vector the field is parallel to.
type LatticeDirection int

const (
	D1 LatticeDirection = 1
	D2 LatticeDirection = 2
	D3 LatticeDirection = 3
)

// Electrons holds the optional &electrons fields. The convergence threshold
// is owned by Calculation.
type Electrons struct {
	StartingWfc     *StartingWfc
	Diagonalization *Diagonalization
}

// StartingWfc is the value of startingwfc.
type StartingWfc string

const (
	StartingWfcAtomic           StartingWfc = "atomic"
	StartingWfcAtomicPlusRandom StartingWfc = "atomic+random"
	StartingWfcRandom           StartingWfc = "random"
	StartingWfcFile             StartingWfc = "file"
)

// Value returns the namelist text for s.
func (s StartingWfc) Value() string { return string(s) }

// Diagonalization is the value of diagonalization.
type Diagonalization string

const (
	DiagonalizationDavid Diagonalization = "david"
	DiagonalizationCg    Diagonalization = "cg"
)

// Value returns the namelist text for d.
func (d Diagonalization) Value() string { return string(d) }

// Species is one line of the ATOMIC_SPECIES card.
type Species struct {
	Label                   string
	Mass                    float64
	PseudopotentialFilename string
}

// AtomicPositions is the ATOMIC_POSITIONS card.
type AtomicPositions struct {
	CoordinateType PositionCoordinateType
	Coordinates    []AtomCoordinate
}

// PositionCoordinateType is the unit option of ATOMIC_POSITIONS.
type PositionCoordinateType string

const (
	PositionsAlat      PositionCoordinateType = "alat"
	PositionsBohr      PositionCoordinateType = "bohr"
	PositionsAngstrom  PositionCoordinateType = "angstrom"
	PositionsCrystal   PositionCoordinateType = "crystal"
	PositionsCrystalSG PositionCoordinateType = "crystal_sg"
)

// Value returns the card option text for p.
func (p PositionCoordinateType) Value() string { return string(p) }

// AtomCoordinate is one atom. IfPos, when set, fixes the components whose
// entry is false during relaxation.
type AtomCoordinate struct {
	Species string
	R       [3]float64
	IfPos   *[3]bool
}

// KPoints is one of KPointsCrystal, KPointsCrystalUniform, KPointsAutomatic or
// KPointsCrystalBands. Cartesian (tpiba) lists, gamma-only sampling and
// contour grids are not supported.
type KPoints interface {
	Value() string
	isKPoints()
}

// KPointsCrystal is an explicit list of (k1, k2, k3, weight) in crystal
// coordinates.
type KPointsCrystal [][4]float64

// KPointsCrystalUniform is a uniform grid expanded into an explicit crystal
// list at render time. See UniformGrid.
type KPointsCrystalUniform [3]uint64

// KPointsAutomatic is a Monkhorst-Pack grid generated by pw.x. A nil Sk means
// no shift in any direction.
type KPointsAutomatic struct {
	Nk [3]uint64
	Sk *[3]bool
}

// KPointsCrystalBands is a band path through PanelBounds with NkPerPanel
// points generated on each segment.
type KPointsCrystalBands struct {
	NkPerPanel  uint64
	PanelBounds [][3]float64
}

func (KPointsCrystal) Value() string        { return "crystal" }
func (KPointsCrystalUniform) Value() string { return "crystal" }
func (KPointsAutomatic) Value() string      { return "automatic" }
func (KPointsCrystalBands) Value() string   { return "crystal_b" }

func (KPointsCrystal) isKPoints()        {}
func (KPointsCrystalUniform) isKPoints() {}
func (KPointsAutomatic) isKPoints()      {}
func (KPointsCrystalBands) isKPoints()   {}
