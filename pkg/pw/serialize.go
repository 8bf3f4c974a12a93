package pw

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qeforge/qeforge/pkg/fileio"
	"github.com/qeforge/qeforge/pkg/namelist"
)

// MakeInputFile validates input and renders it as pw.x input text.
//
// The sections are &control, &system, &electrons, ATOMIC_SPECIES,
// CELL_PARAMETERS (free lattice only), ATOMIC_POSITIONS and K_POINTS, joined
// by newlines. ATOMIC_SPECIES and ATOMIC_POSITIONS are left out when they
// would have no records. A validation failure is returned as an ErrorList
// before any text is produced.
func MakeInputFile(input *Input) (string, error) {
	if err := Validate(input); err != nil {
		return "", err
	}

	control, err := makeControl(input)
	if err != nil {
		return "", err
	}

	system, err := makeSystem(input)
	if err != nil {
		return "", err
	}

	electrons, err := makeElectrons(input)
	if err != nil {
		return "", err
	}

	cell, err := makeCell(input.System.Ibrav)
	if err != nil {
		return "", err
	}

	sections := []string{control, system, electrons}
	for _, card := range []string{makeSpecies(input), cell, makePositions(input)} {
		if card != "" {
			sections = append(sections, card)
		}
	}

	kpoints, err := makeKPoints(input.KPoints)
	if err != nil {
		return "", err
	}
	sections = append(sections, kpoints)

	return strings.Join(sections, "\n"), nil
}

// WriteInputFile renders input and writes it to path.
func WriteInputFile(input *Input, path string) error {
	text, err := MakeInputFile(input)
	if err != nil {
		return err
	}
	return fileio.WriteFile(path, text)
}

func makeControl(input *Input) (string, error) {
	if input.Calculation == nil {
		return "", &MissingError{Field: "calculation"}
	}

	var lines []string
	lines = namelist.PushStringField(lines, "calculation", input.Calculation.Value())

	control := &input.Control

	if control.RestartMode != nil {
		lines = namelist.PushStringField(lines, "restart_mode", control.RestartMode.Value())
	}

	if control.DiskIO != nil {
		lines = namelist.PushStringField(lines, "disk_io", control.DiskIO.Value())
	}

	lines = namelist.PushBoolField(lines, "wf_collect", control.WfCollect)

	if control.PseudoDir != nil {
		path, err := namelist.CheckUTF8(*control.PseudoDir, ErrPseudoDirEncoding)
		if err != nil {
			return "", err
		}
		lines = namelist.PushStringField(lines, "pseudo_dir", path)
	}

	if control.OutDir != nil {
		path, err := namelist.CheckUTF8(*control.OutDir, ErrOutDirEncoding)
		if err != nil {
			return "", err
		}
		lines = namelist.PushStringField(lines, "outdir", path)
	}

	switch efield := input.Efield.(type) {
	case nil:
	case TeField:
		lines = namelist.PushBoolField(lines, "tefield", namelist.Ptr(true))
		lines = namelist.PushBoolField(lines, "dipfield", namelist.Ptr(efield.Dipfield))
	default:
		return "", &UnsupportedError{Field: "efield", Value: efield}
	}

	if control.Prefix != nil {
		lines = namelist.PushStringField(lines, "prefix", *control.Prefix)
	}

	return namelist.Group("control", lines), nil
}

func makeSystem(input *Input) (string, error) {
	system := &input.System

	if system.Ibrav == nil {
		return "", &MissingError{Field: "ibrav"}
	}
	if system.Occupations == nil {
		return "", &MissingError{Field: "occupations"}
	}

	var lines []string
	lines = namelist.PushField(lines, "ibrav", system.Ibrav.Value())
	lines = namelist.PushField(lines, "celldm(1)", namelist.Float(system.Alat))
	lines = namelist.PushField(lines, "nat", strconv.Itoa(len(input.AtomicPositions.Coordinates)))
	lines = namelist.PushField(lines, "ntyp", strconv.Itoa(len(input.Species)))

	switch calc := input.Calculation.(type) {
	case Nscf:
		lines = pushBandOptions(lines, calc.Nbnd, calc.Nosym)
	case Bands:
		lines = pushBandOptions(lines, calc.Nbnd, calc.Nosym)
	}

	lines = namelist.PushField(lines, "ecutwfc", namelist.Float(system.Ecutwfc))
	lines = namelist.PushField(lines, "ecutrho", namelist.Float(system.Ecutrho))

	lines = namelist.PushStringField(lines, "occupations", system.Occupations.Value())
	switch occ := system.Occupations.(type) {
	case Smearing:
		lines = namelist.PushStringField(lines, "smearing", occ.Kind.Value())
		lines = namelist.PushField(lines, "degauss", namelist.Float(occ.Degauss))
	case Tetrahedra, TetrahedraLin, TetrahedraOpt, Fixed:
	default:
		return "", &UnsupportedError{Field: "occupations", Value: occ}
	}

	switch spin := system.SpinType.(type) {
	case nil:
	case NonPolarized:
		lines = namelist.PushField(lines, "nspin", "1")
	case CollinearPolarized:
		lines = namelist.PushField(lines, "nspin", "2")
	case Noncollinear:
		lines = namelist.PushBoolField(lines, "noncolin", namelist.Ptr(true))
		lines = namelist.PushBoolField(lines, "lspinorb", namelist.Ptr(spin.SpinOrbit))
	default:
		return "", &UnsupportedError{Field: "spin_type", Value: spin}
	}

	if efield, ok := input.Efield.(TeField); ok {
		edir, err := efield.Edir.value()
		if err != nil {
			return "", err
		}
		lines = namelist.PushField(lines, "edir", edir)
		lines = namelist.PushField(lines, "emaxpos", namelist.Float(efield.Emaxpos))
		lines = namelist.PushField(lines, "eopreg", namelist.Float(efield.Eopreg))
		lines = namelist.PushField(lines, "eamp", namelist.Sci(efield.Eamp))
	}

	return namelist.Group("system", lines), nil
}

func pushBandOptions(lines []string, nbnd *uint64, nosym *bool) []string {
	if nbnd != nil {
		lines = namelist.PushField(lines, "nbnd", strconv.FormatUint(*nbnd, 10))
	}
	return namelist.PushBoolField(lines, "nosym", nosym)
}

func (d LatticeDirection) value() (string, error) {
	switch d {
	case D1, D2, D3:
		return strconv.Itoa(int(d)), nil
	default:
		return "", &UnsupportedError{Field: "edir", Value: int(d)}
	}
}

func makeElectrons(input *Input) (string, error) {
	var lines []string
	electrons := &input.Electrons

	if electrons.StartingWfc != nil {
		lines = namelist.PushStringField(lines, "startingwfc", electrons.StartingWfc.Value())
	}
	if electrons.Diagonalization != nil {
		lines = namelist.PushStringField(lines, "diagonalization", electrons.Diagonalization.Value())
	}

	switch calc := input.Calculation.(type) {
	case Scf:
		lines = namelist.PushField(lines, "conv_thr", namelist.Sci(calc.ConvThr))
	case Nscf:
		lines = namelist.PushField(lines, "diago_thr_init", namelist.Sci(calc.DiagoThrInit))
	case Bands:
		lines = namelist.PushField(lines, "diago_thr_init", namelist.Sci(calc.DiagoThrInit))
	default:
		return "", &UnsupportedError{Field: "calculation", Value: calc}
	}

	return namelist.Group("electrons", lines), nil
}

// makeSpecies returns "" when there are no species.
func makeSpecies(input *Input) string {
	if len(input.Species) == 0 {
		return ""
	}

	lines := []string{"ATOMIC_SPECIES"}
	for _, s := range input.Species {
		lines = append(lines, fmt.Sprintf(" %s %s %s", s.Label, namelist.Float(s.Mass), s.PseudopotentialFilename))
	}
	return strings.Join(lines, "\n")
}

// makeCell renders CELL_PARAMETERS for lattices given by an explicit cell and
// returns "" for the others.
func makeCell(ibrav Ibrav) (string, error) {
	switch ibrav := ibrav.(type) {
	case Free:
		lines := []string{"CELL_PARAMETERS " + ibrav.Cell.Units.Value()}
		for _, row := range ibrav.Cell.Cell {
			lines = append(lines, " "+joinFloats(row[:]))
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", &UnsupportedError{Field: "ibrav", Value: ibrav}
	}
}

func makePositions(input *Input) string {
	positions := &input.AtomicPositions
	if len(positions.Coordinates) == 0 {
		return ""
	}
	lines := []string{"ATOMIC_POSITIONS " + positions.CoordinateType.Value()}

	for _, atom := range positions.Coordinates {
		line := fmt.Sprintf(" %s %s", atom.Species, joinFloats(atom.R[:]))
		if atom.IfPos != nil {
			for _, free := range atom.IfPos {
				if free {
					line += " 1"
				} else {
					line += " 0"
				}
			}
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func makeKPoints(kpoints KPoints) (string, error) {
	if kpoints == nil {
		return "", &MissingError{Field: "k_points"}
	}

	lines := []string{"K_POINTS " + kpoints.Value()}

	switch k := kpoints.(type) {
	case KPointsCrystal:
		lines = appendWeighted(lines, k)
	case KPointsCrystalUniform:
		lines = appendWeighted(lines, UniformGrid(k))
	case KPointsAutomatic:
		shift := "0 0 0"
		if k.Sk != nil {
			shift = fmt.Sprintf("%d %d %d", bit(k.Sk[0]), bit(k.Sk[1]), bit(k.Sk[2]))
		}
		lines = append(lines, fmt.Sprintf(" %d %d %d %s", k.Nk[0], k.Nk[1], k.Nk[2], shift))
	case KPointsCrystalBands:
		lines = append(lines, fmt.Sprintf(" %d", len(k.PanelBounds)))
		for _, p := range k.PanelBounds {
			lines = append(lines, fmt.Sprintf(" %s %d", joinFloats(p[:]), k.NkPerPanel))
		}
	default:
		return "", &UnsupportedError{Field: "k_points", Value: k}
	}

	return strings.Join(lines, "\n"), nil
}

func appendWeighted(lines []string, points [][4]float64) []string {
	lines = append(lines, fmt.Sprintf(" %d", len(points)))
	for _, p := range points {
		lines = append(lines, " "+joinFloats(p[:]))
	}
	return lines
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = namelist.Float(f)
	}
	return strings.Join(parts, " ")
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
