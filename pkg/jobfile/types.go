package jobfile

import (
	"fmt"
	"strings"
)

// Program names accepted in Job.Program.
const (
	ProgramPW           = "pw"
	ProgramBands        = "bands"
	ProgramPW2Wannier90 = "pw2wannier90"
)

// Job is a job document: which program to generate input for, where to
// write it, and the program's configuration. Exactly the section named by
// Program is used.
type Job struct {
	// Program is the target program (pw, bands, pw2wannier90).
	Program string `yaml:"program" validate:"required,oneof=pw bands pw2wannier90"`

	// Output is the path the rendered input is written to. Empty means stdout.
	Output string `yaml:"output,omitempty"`

	PW           *PWConfig           `yaml:"pw,omitempty" validate:"required_if=Program pw"`
	Bands        *BandsConfig        `yaml:"bands,omitempty" validate:"required_if=Program bands"`
	PW2Wannier90 *PW2Wannier90Config `yaml:"pw2wannier90,omitempty" validate:"required_if=Program pw2wannier90"`
}

// PWConfig is the pw.x section of a job document.
type PWConfig struct {
	Calculation     CalculationConfig `yaml:"calculation"`
	Control         ControlConfig     `yaml:"control,omitempty"`
	System          SystemConfig      `yaml:"system"`
	Efield          *EfieldConfig     `yaml:"efield,omitempty"`
	Electrons       ElectronsConfig   `yaml:"electrons,omitempty"`
	Species         []SpeciesConfig   `yaml:"species" validate:"required,min=1,dive"`
	AtomicPositions PositionsConfig   `yaml:"atomic_positions"`
	KPoints         KPointsConfig     `yaml:"k_points"`
}

// CalculationConfig selects the calculation and its threshold. ConvThr
// belongs to scf, DiagoThrInit to nscf and bands.
type CalculationConfig struct {
	Type         string   `yaml:"type" validate:"required,oneof=scf nscf bands"`
	ConvThr      *float64 `yaml:"conv_thr,omitempty" validate:"required_if=Type scf"`
	DiagoThrInit *float64 `yaml:"diago_thr_init,omitempty" validate:"required_unless=Type scf"`
	Nbnd         *uint64  `yaml:"nbnd,omitempty"`
	Nosym        *bool    `yaml:"nosym,omitempty"`
}

// ControlConfig holds the optional &control fields.
type ControlConfig struct {
	RestartMode string  `yaml:"restart_mode,omitempty" validate:"omitempty,oneof=from_scratch restart"`
	DiskIO      string  `yaml:"disk_io,omitempty" validate:"omitempty,oneof=low medium high none"`
	WfCollect   *bool   `yaml:"wf_collect,omitempty"`
	PseudoDir   *string `yaml:"pseudo_dir,omitempty"`
	OutDir      *string `yaml:"outdir,omitempty"`
	Prefix      *string `yaml:"prefix,omitempty"`
}

// SystemConfig holds the &system fields. Numbers are pointers so that a
// missing value is told apart from zero; the sign is checked by pw.Validate.
type SystemConfig struct {
	Ibrav       LatticeConfig     `yaml:"ibrav"`
	Alat        *float64          `yaml:"alat" validate:"required"`
	Ecutwfc     *float64          `yaml:"ecutwfc" validate:"required"`
	Ecutrho     *float64          `yaml:"ecutrho" validate:"required"`
	Occupations OccupationsConfig `yaml:"occupations"`
	SpinType    *SpinConfig       `yaml:"spin_type,omitempty"`
}

// LatticeConfig selects the Bravais lattice. Only "free" is accepted.
type LatticeConfig struct {
	Type  string        `yaml:"type" validate:"required,oneof=free"`
	Units string        `yaml:"units" validate:"required,oneof=bohr angstrom alat"`
	Cell  [3][3]float64 `yaml:"cell"`
}

// OccupationsConfig selects the occupation scheme.
type OccupationsConfig struct {
	Type     string   `yaml:"type" validate:"required,oneof=smearing tetrahedra tetrahedra_lin tetrahedra_opt fixed"`
	Smearing string   `yaml:"smearing,omitempty" validate:"required_if=Type smearing,omitempty,oneof=gaussian methfessel-paxton marzari-vanderbilt fermi-dirac"`
	Degauss  *float64 `yaml:"degauss,omitempty" validate:"required_if=Type smearing"`
}

// SpinConfig selects the spin representation.
type SpinConfig struct {
	Type      string `yaml:"type" validate:"required,oneof=non_polarized collinear_polarized noncollinear"`
	SpinOrbit bool   `yaml:"spin_orbit,omitempty"`
}

// EfieldConfig is the sawtooth electric field. Every field is required.
type EfieldConfig struct {
	Type     string   `yaml:"type" validate:"required,oneof=tefield"`
	Dipfield bool     `yaml:"dipfield"`
	Edir     int      `yaml:"edir" validate:"required,oneof=1 2 3"`
	Emaxpos  *float64 `yaml:"emaxpos" validate:"required"`
	Eopreg   *float64 `yaml:"eopreg" validate:"required"`
	Eamp     *float64 `yaml:"eamp" validate:"required"`
}

// ElectronsConfig holds the optional &electrons fields.
type ElectronsConfig struct {
	StartingWfc     string `yaml:"startingwfc,omitempty" validate:"omitempty,oneof=atomic atomic+random random file"`
	Diagonalization string `yaml:"diagonalization,omitempty" validate:"omitempty,oneof=david cg"`
}

// SpeciesConfig is one ATOMIC_SPECIES entry.
type SpeciesConfig struct {
	Label           string  `yaml:"label" validate:"required"`
	Mass            float64 `yaml:"mass"`
	Pseudopotential string  `yaml:"pseudopotential" validate:"required"`
}

// PositionsConfig is the ATOMIC_POSITIONS card.
type PositionsConfig struct {
	CoordinateType string       `yaml:"coordinate_type" validate:"required,oneof=alat bohr angstrom crystal crystal_sg"`
	Coordinates    []AtomConfig `yaml:"coordinates" validate:"dive"`
}

// AtomConfig is one atom.
type AtomConfig struct {
	Species string     `yaml:"species" validate:"required"`
	R       [3]float64 `yaml:"r"`
	IfPos   *[3]bool   `yaml:"if_pos,omitempty"`
}

// KPointsConfig selects the k-point sampling. Points belongs to crystal, Nk
// to crystal_uniform and automatic, Sk to automatic, and NkPerPanel and
// PanelBounds to crystal_bands.
type KPointsConfig struct {
	Type        string       `yaml:"type" validate:"required,oneof=crystal crystal_uniform automatic crystal_bands"`
	Points      [][4]float64 `yaml:"points,omitempty" validate:"required_if=Type crystal"`
	Nk          *[3]uint64   `yaml:"nk,omitempty"`
	Sk          *[3]bool     `yaml:"sk,omitempty"`
	NkPerPanel  *uint64      `yaml:"nk_per_panel,omitempty" validate:"required_if=Type crystal_bands"`
	PanelBounds [][3]float64 `yaml:"panel_bounds,omitempty" validate:"required_if=Type crystal_bands"`
}

// BandsConfig is the bands.x section of a job document.
type BandsConfig struct {
	Prefix  *string `yaml:"prefix,omitempty"`
	OutDir  *string `yaml:"outdir,omitempty"`
	Filband *string `yaml:"filband,omitempty"`
	Lsym    bool    `yaml:"lsym"`
}

// PW2Wannier90Config is the pw2wannier90.x section of a job document.
type PW2Wannier90Config struct {
	Prefix   string  `yaml:"prefix" validate:"required"`
	OutDir   *string `yaml:"outdir,omitempty"`
	Seedname string  `yaml:"seedname" validate:"required"`
	WriteUnk bool    `yaml:"write_unk"`
	WriteAmn bool    `yaml:"write_amn"`
	WriteMmn bool    `yaml:"write_mmn"`
	WriteSpn bool    `yaml:"write_spn"`
}

// ValidationError represents a problem in a job document, with location
// information when the source format provides it.
type ValidationError struct {
	// File is the source file path.
	File string `json:"file,omitempty"`

	// Line is the line number (1-indexed).
	Line int `json:"line,omitempty"`

	// Column is the column number (1-indexed).
	Column int `json:"column,omitempty"`

	// Path is the document path to the offending field (e.g. "pw.system.alat").
	Path string `json:"path,omitempty"`

	// Message is the error message.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}
