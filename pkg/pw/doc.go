// Package pw models, validates and renders input files for pw.x, the
// Quantum ESPRESSO self-consistent field and band structure program.
//
// # Overview
//
// An Input is built once by the caller and never modified by this package.
// Validate checks the numeric properties the types cannot express and returns
// every violation at once. MakeInputFile validates and then renders the
// namelists and cards; WriteInputFile additionally writes the text to a file.
//
// # Choices
//
// Mutually exclusive options are sealed interfaces: Calculation (Scf, Nscf,
// Bands), Ibrav (Free), Occupations (Smearing, Tetrahedra, TetrahedraLin,
// TetrahedraOpt, Fixed), SpinType, Efield (TeField) and KPoints
// (KPointsCrystal, KPointsCrystalUniform, KPointsAutomatic,
// KPointsCrystalBands). The renderer switches over them exhaustively and
// rejects values of any other type with an *UnsupportedError.
//
// # Usage Example
//
//	input := &pw.Input{
//	    Calculation: pw.Scf{ConvThr: 1e-8},
//	    System: pw.System{
//	        Ibrav:       pw.Free{Cell: cell},
//	        Alat:        3.0,
//	        Ecutwfc:     60,
//	        Ecutrho:     240,
//	        Occupations: pw.Fixed{},
//	    },
//	    ...
//	}
//
//	text, err := pw.MakeInputFile(input)
//	var verrs pw.ErrorList
//	if errors.As(err, &verrs) {
//	    for _, e := range verrs {
//	        fmt.Println(e.Kind, e.Value)
//	    }
//	}
//
// # Number Formats
//
// conv_thr, diago_thr_init and eamp are written in exponent form (1e-8); all
// other numbers use plain decimal form. nat and ntyp are always counted from
// AtomicPositions and Species.
//
// # Thread Safety
//
// Validate and MakeInputFile are pure functions of their input and safe to
// call concurrently.
package pw
