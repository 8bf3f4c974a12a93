package pw

import (
	"errors"
	"fmt"

	"github.com/qeforge/qeforge/pkg/namelist"
)

// ErrorKind identifies which property of the input an InputError reports.
type ErrorKind string

const (
	// ErrorKindLatticeConstant reports a non-positive alat.
	ErrorKindLatticeConstant ErrorKind = "lattice_constant"

	// ErrorKindConvThr reports a non-positive scf conv_thr.
	ErrorKindConvThr ErrorKind = "conv_thr"

	// ErrorKindDiagoThrInit reports a non-positive nscf/bands diago_thr_init.
	ErrorKindDiagoThrInit ErrorKind = "diago_thr_init"

	ErrorKindEcutwfc  ErrorKind = "ecutwfc"
	ErrorKindEcutrho  ErrorKind = "ecutrho"
	ErrorKindSmearing ErrorKind = "smearing"

	// ErrorKindMass reports a non-positive atomic mass; Label names the species.
	ErrorKindMass ErrorKind = "mass"

	// ErrorKindCalculation reports a Calculation that is nil or not one of
	// the value variants Scf, Nscf and Bands; Label holds its dynamic type.
	ErrorKindCalculation ErrorKind = "calculation"

	// ErrorKindOccupations reports Occupations that are nil or not one of the
	// value variants; Label holds its dynamic type.
	ErrorKindOccupations ErrorKind = "occupations"

	// ErrorKindKPointGrid reports a uniform k-point grid with a zero
	// dimension or more than MaxUniformGridPoints points; Label holds the
	// grid as n0xn1xn2.
	ErrorKindKPointGrid ErrorKind = "k_point_grid"
)

// InputError is a single violated property of an Input, carrying the
// offending value.
type InputError struct {
	Kind  ErrorKind
	Value float64

	// Label is the species label for ErrorKindMass, the offending type for
	// ErrorKindCalculation and ErrorKindOccupations, the grid for
	// ErrorKindKPointGrid and empty otherwise.
	Label string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	v := namelist.Float(e.Value)
	switch e.Kind {
	case ErrorKindLatticeConstant:
		return fmt.Sprintf("Lattice constant `alat` must be positive; got %s instead.", v)
	case ErrorKindConvThr:
		return fmt.Sprintf("SCF convergence threshold `conv_thr` must be positive; got %s instead.", v)
	case ErrorKindDiagoThrInit:
		return fmt.Sprintf("Diagonalization convergence threshold `diago_thr_init` must be positive; got %s instead.", v)
	case ErrorKindEcutwfc:
		return fmt.Sprintf("Wavefunction cutoff energy `ecutwfc` must be positive; got %s instead.", v)
	case ErrorKindEcutrho:
		return fmt.Sprintf("Charge density cutoff energy `ecutrho` must be positive; got %s instead.", v)
	case ErrorKindSmearing:
		return fmt.Sprintf("Smearing value must be positive; got %s instead.", v)
	case ErrorKindMass:
		return fmt.Sprintf("Atomic mass must be positive; for atom %s got %s instead.", e.Label, v)
	case ErrorKindCalculation:
		return fmt.Sprintf("Calculation must be one of Scf, Nscf or Bands; got %s instead.", e.Label)
	case ErrorKindOccupations:
		return fmt.Sprintf("Occupations must be one of Smearing, Tetrahedra, TetrahedraLin, TetrahedraOpt or Fixed; got %s instead.", e.Label)
	case ErrorKindKPointGrid:
		return fmt.Sprintf("Uniform k-point grid must have between 1 and %d points; got %s instead.", MaxUniformGridPoints, e.Label)
	default:
		return fmt.Sprintf("invalid %s: %s", e.Kind, v)
	}
}

// Is reports whether target is an *InputError of the same kind, so callers
// can match with errors.Is(err, &InputError{Kind: ErrorKindEcutrho}).
func (e *InputError) Is(target error) bool {
	t, ok := target.(*InputError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrorList is the non-empty list of violations returned by Validate.
type ErrorList = namelist.ErrorList[*InputError]

var (
	// ErrPseudoDirEncoding is returned when Control.PseudoDir is not valid UTF-8.
	ErrPseudoDirEncoding = errors.New("`pseudo_dir` is not valid UTF-8")

	// ErrOutDirEncoding is returned when Control.OutDir is not valid UTF-8.
	ErrOutDirEncoding = errors.New("`outdir` is not valid UTF-8")
)

// MissingError reports a required choice left as a nil interface.
type MissingError struct {
	Field string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("`%s` is not set", e.Field)
}

// UnsupportedError reports a value outside the closed set of variants or
// enum values accepted for a field.
type UnsupportedError struct {
	Field string
	Value any
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported `%s` value %v", e.Field, e.Value)
}
