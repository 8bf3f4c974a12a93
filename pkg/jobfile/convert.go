package jobfile

import (
	"fmt"

	"github.com/qeforge/qeforge/pkg/bands"
	"github.com/qeforge/qeforge/pkg/namelist"
	"github.com/qeforge/qeforge/pkg/pw"
	"github.com/qeforge/qeforge/pkg/pw2wannier90"
)

// Render converts the section selected by Program into its typed model and
// renders the input text for that program.
func (j *Job) Render() (string, error) {
	switch j.Program {
	case ProgramPW:
		input, err := j.PWInput()
		if err != nil {
			return "", err
		}
		return pw.MakeInputFile(input)
	case ProgramBands:
		input, err := j.BandsInput()
		if err != nil {
			return "", err
		}
		return bands.MakeInputFile(input)
	case ProgramPW2Wannier90:
		input, err := j.PW2Wannier90Input()
		if err != nil {
			return "", err
		}
		return pw2wannier90.MakeInputFile(input)
	default:
		return "", &ValidationError{Path: "program", Message: fmt.Sprintf("unknown program %q", j.Program)}
	}
}

// BandsInput converts the bands section into a bands.Input.
func (j *Job) BandsInput() (*bands.Input, error) {
	c := j.Bands
	if c == nil {
		return nil, missing("bands")
	}
	return &bands.Input{
		Prefix:  c.Prefix,
		OutDir:  c.OutDir,
		Filband: c.Filband,
		Lsym:    c.Lsym,
	}, nil
}

// PW2Wannier90Input converts the pw2wannier90 section into a
// pw2wannier90.Input.
func (j *Job) PW2Wannier90Input() (*pw2wannier90.Input, error) {
	c := j.PW2Wannier90
	if c == nil {
		return nil, missing("pw2wannier90")
	}
	return &pw2wannier90.Input{
		Prefix:   c.Prefix,
		OutDir:   c.OutDir,
		Seedname: c.Seedname,
		WriteUnk: c.WriteUnk,
		WriteAmn: c.WriteAmn,
		WriteMmn: c.WriteMmn,
		WriteSpn: c.WriteSpn,
	}, nil
}

// PWInput converts the pw section into a pw.Input. Document errors are
// collected and returned together; numeric properties are left to
// pw.Validate.
func (j *Job) PWInput() (*pw.Input, error) {
	c := j.PW
	if c == nil {
		return nil, missing("pw")
	}

	var errs namelist.ErrorList[*ValidationError]
	fail := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: "pw." + path, Message: fmt.Sprintf(format, args...)})
	}

	input := &pw.Input{
		Control: pw.Control{
			WfCollect: c.Control.WfCollect,
			PseudoDir: c.Control.PseudoDir,
			OutDir:    c.Control.OutDir,
			Prefix:    c.Control.Prefix,
		},
	}

	calc := c.Calculation
	switch calc.Type {
	case "scf":
		if calc.ConvThr == nil {
			fail("calculation.conv_thr", "required for scf")
		} else {
			input.Calculation = pw.Scf{ConvThr: *calc.ConvThr}
		}
	case "nscf", "bands":
		if calc.DiagoThrInit == nil {
			fail("calculation.diago_thr_init", "required for %s", calc.Type)
		} else if calc.Type == "nscf" {
			input.Calculation = pw.Nscf{DiagoThrInit: *calc.DiagoThrInit, Nbnd: calc.Nbnd, Nosym: calc.Nosym}
		} else {
			input.Calculation = pw.Bands{DiagoThrInit: *calc.DiagoThrInit, Nbnd: calc.Nbnd, Nosym: calc.Nosym}
		}
	default:
		fail("calculation.type", "unknown calculation %q", calc.Type)
	}

	if v := c.Control.RestartMode; v != "" {
		mode := pw.RestartMode(v)
		if !oneOf(mode, pw.RestartFromScratch, pw.RestartRestart) {
			fail("control.restart_mode", "unknown value %q", v)
		}
		input.Control.RestartMode = &mode
	}
	if v := c.Control.DiskIO; v != "" {
		level := pw.DiskIO(v)
		if !oneOf(level, pw.DiskIOLow, pw.DiskIOMedium, pw.DiskIOHigh, pw.DiskIONone) {
			fail("control.disk_io", "unknown value %q", v)
		}
		input.Control.DiskIO = &level
	}

	sys := c.System
	switch sys.Ibrav.Type {
	case "free":
		units := pw.LatticeUnits(sys.Ibrav.Units)
		if !oneOf(units, pw.LatticeBohr, pw.LatticeAngstrom, pw.LatticeAlat) {
			fail("system.ibrav.units", "unknown value %q", sys.Ibrav.Units)
		}
		input.System.Ibrav = pw.Free{Cell: pw.Cell{Units: units, Cell: sys.Ibrav.Cell}}
	default:
		fail("system.ibrav.type", "unsupported lattice %q", sys.Ibrav.Type)
	}

	for _, v := range []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"alat", sys.Alat, &input.System.Alat},
		{"ecutwfc", sys.Ecutwfc, &input.System.Ecutwfc},
		{"ecutrho", sys.Ecutrho, &input.System.Ecutrho},
	} {
		if v.src == nil {
			fail("system."+v.name, "required")
			continue
		}
		*v.dst = *v.src
	}

	occ := sys.Occupations
	switch occ.Type {
	case "smearing":
		kind := pw.SmearingKind(occ.Smearing)
		if !oneOf(kind, pw.SmearingGaussian, pw.SmearingMethfesselPaxton, pw.SmearingMarzariVanderbilt, pw.SmearingFermiDirac) {
			fail("system.occupations.smearing", "unknown value %q", occ.Smearing)
		}
		if occ.Degauss == nil {
			fail("system.occupations.degauss", "required for smearing")
		} else {
			input.System.Occupations = pw.Smearing{Kind: kind, Degauss: *occ.Degauss}
		}
	case "tetrahedra":
		input.System.Occupations = pw.Tetrahedra{}
	case "tetrahedra_lin":
		input.System.Occupations = pw.TetrahedraLin{}
	case "tetrahedra_opt":
		input.System.Occupations = pw.TetrahedraOpt{}
	case "fixed":
		input.System.Occupations = pw.Fixed{}
	default:
		fail("system.occupations.type", "unknown occupations %q", occ.Type)
	}

	if spin := sys.SpinType; spin != nil {
		switch spin.Type {
		case "non_polarized":
			input.System.SpinType = pw.NonPolarized{}
		case "collinear_polarized":
			input.System.SpinType = pw.CollinearPolarized{}
		case "noncollinear":
			input.System.SpinType = pw.Noncollinear{SpinOrbit: spin.SpinOrbit}
		default:
			fail("system.spin_type.type", "unknown spin type %q", spin.Type)
		}
	}

	if ef := c.Efield; ef != nil {
		switch {
		case ef.Type != "tefield":
			fail("efield.type", "unsupported field %q", ef.Type)
		case ef.Emaxpos == nil || ef.Eopreg == nil || ef.Eamp == nil:
			fail("efield", "emaxpos, eopreg and eamp are all required")
		default:
			input.Efield = pw.TeField{
				Dipfield: ef.Dipfield,
				Edir:     pw.LatticeDirection(ef.Edir),
				Emaxpos:  *ef.Emaxpos,
				Eopreg:   *ef.Eopreg,
				Eamp:     *ef.Eamp,
			}
		}
	}

	if v := c.Electrons.StartingWfc; v != "" {
		wfc := pw.StartingWfc(v)
		if !oneOf(wfc, pw.StartingWfcAtomic, pw.StartingWfcAtomicPlusRandom, pw.StartingWfcRandom, pw.StartingWfcFile) {
			fail("electrons.startingwfc", "unknown value %q", v)
		}
		input.Electrons.StartingWfc = &wfc
	}
	if v := c.Electrons.Diagonalization; v != "" {
		diag := pw.Diagonalization(v)
		if !oneOf(diag, pw.DiagonalizationDavid, pw.DiagonalizationCg) {
			fail("electrons.diagonalization", "unknown value %q", v)
		}
		input.Electrons.Diagonalization = &diag
	}

	for _, s := range c.Species {
		input.Species = append(input.Species, pw.Species{
			Label:                   s.Label,
			Mass:                    s.Mass,
			PseudopotentialFilename: s.Pseudopotential,
		})
	}

	pos := c.AtomicPositions
	coordType := pw.PositionCoordinateType(pos.CoordinateType)
	if !oneOf(coordType, pw.PositionsAlat, pw.PositionsBohr, pw.PositionsAngstrom, pw.PositionsCrystal, pw.PositionsCrystalSG) {
		fail("atomic_positions.coordinate_type", "unknown value %q", pos.CoordinateType)
	}
	input.AtomicPositions.CoordinateType = coordType
	for _, a := range pos.Coordinates {
		input.AtomicPositions.Coordinates = append(input.AtomicPositions.Coordinates, pw.AtomCoordinate{
			Species: a.Species,
			R:       a.R,
			IfPos:   a.IfPos,
		})
	}

	k := c.KPoints
	switch k.Type {
	case "crystal":
		input.KPoints = pw.KPointsCrystal(k.Points)
	case "crystal_uniform":
		if k.Nk == nil {
			fail("k_points.nk", "required for crystal_uniform")
		} else {
			input.KPoints = pw.KPointsCrystalUniform(*k.Nk)
		}
	case "automatic":
		if k.Nk == nil {
			fail("k_points.nk", "required for automatic")
		} else {
			input.KPoints = pw.KPointsAutomatic{Nk: *k.Nk, Sk: k.Sk}
		}
	case "crystal_bands":
		if k.NkPerPanel == nil {
			fail("k_points.nk_per_panel", "required for crystal_bands")
		} else {
			input.KPoints = pw.KPointsCrystalBands{NkPerPanel: *k.NkPerPanel, PanelBounds: k.PanelBounds}
		}
	default:
		fail("k_points.type", "unknown k-points %q", k.Type)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return input, nil
}

func missing(section string) error {
	return &ValidationError{Path: section, Message: "section is required for this program"}
}

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
