package pw

import "fmt"

// Validate checks the properties of input that its types cannot express. It
// never stops at the first problem: every violation is collected, in a fixed
// order, and returned as an ErrorList. It returns nil when input is valid.
//
// Checks, in order: alat, the active Calculation and its convergence
// threshold, ecutwfc, ecutrho, the Occupations and their degauss, the mass of
// every species and the size of a uniform k-point grid. A value passes only
// when it is strictly greater than zero, so NaN is rejected.
//
// Calculation and Occupations must hold one of their value variants. A nil
// interface or a pointer to a variant is reported rather than skipped.
//
// Not checked:
//   - that the cell volume |(a1 x a2) . a3| is non-zero, or positive
//   - that ecutrho suits the pseudopotential type (4*ecutwfc for
//     norm-conserving, roughly 8-12*ecutwfc for ultrasoft and PAW)
//   - that emaxpos and eopreg lie in [0, 1]
//   - that tetrahedron occupations come with automatic k-points
//   - that every species in AtomicPositions appears in Species
//   - whether nosym should default to true for bands calculations
func Validate(input *Input) error {
	var errs ErrorList
	system := &input.System

	if !positive(system.Alat) {
		errs = append(errs, &InputError{Kind: ErrorKindLatticeConstant, Value: system.Alat})
	}

	switch calc := input.Calculation.(type) {
	case Scf:
		if !positive(calc.ConvThr) {
			errs = append(errs, &InputError{Kind: ErrorKindConvThr, Value: calc.ConvThr})
		}
	case Nscf:
		if !positive(calc.DiagoThrInit) {
			errs = append(errs, &InputError{Kind: ErrorKindDiagoThrInit, Value: calc.DiagoThrInit})
		}
	case Bands:
		if !positive(calc.DiagoThrInit) {
			errs = append(errs, &InputError{Kind: ErrorKindDiagoThrInit, Value: calc.DiagoThrInit})
		}
	default:
		errs = append(errs, &InputError{Kind: ErrorKindCalculation, Label: fmt.Sprintf("%T", calc)})
	}

	if !positive(system.Ecutwfc) {
		errs = append(errs, &InputError{Kind: ErrorKindEcutwfc, Value: system.Ecutwfc})
	}
	if !positive(system.Ecutrho) {
		errs = append(errs, &InputError{Kind: ErrorKindEcutrho, Value: system.Ecutrho})
	}

	switch occ := system.Occupations.(type) {
	case Smearing:
		if !positive(occ.Degauss) {
			errs = append(errs, &InputError{Kind: ErrorKindSmearing, Value: occ.Degauss})
		}
	case Tetrahedra, TetrahedraLin, TetrahedraOpt, Fixed:
	default:
		errs = append(errs, &InputError{Kind: ErrorKindOccupations, Label: fmt.Sprintf("%T", occ)})
	}

	for _, species := range input.Species {
		if !positive(species.Mass) {
			errs = append(errs, &InputError{Kind: ErrorKindMass, Label: species.Label, Value: species.Mass})
		}
	}

	if grid, ok := input.KPoints.(KPointsCrystalUniform); ok {
		if err := uniformGridError(grid); err != nil {
			errs = append(errs, err)
		}
	}

	return errs.Err()
}

// positive is false for NaN.
func positive(v float64) bool {
	return v > 0
}
