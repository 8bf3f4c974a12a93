package pw

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
		want   ErrorList
	}{
		{
			name:   "valid scf",
			modify: func(*Input) {},
		},
		{
			name: "valid bands",
			modify: func(in *Input) {
				in.Calculation = Bands{DiagoThrInit: 1e-6, Nbnd: ptr(uint64(16))}
			},
		},
		{
			name: "zero alat",
			modify: func(in *Input) {
				in.System.Alat = 0
			},
			want: ErrorList{{Kind: ErrorKindLatticeConstant, Value: 0}},
		},
		{
			name: "negative alat",
			modify: func(in *Input) {
				in.System.Alat = -2.5
			},
			want: ErrorList{{Kind: ErrorKindLatticeConstant, Value: -2.5}},
		},
		{
			name: "scf threshold",
			modify: func(in *Input) {
				in.Calculation = Scf{ConvThr: 0}
			},
			want: ErrorList{{Kind: ErrorKindConvThr, Value: 0}},
		},
		{
			name: "nscf threshold",
			modify: func(in *Input) {
				in.Calculation = Nscf{DiagoThrInit: -1e-4}
			},
			want: ErrorList{{Kind: ErrorKindDiagoThrInit, Value: -1e-4}},
		},
		{
			name: "bands threshold",
			modify: func(in *Input) {
				in.Calculation = Bands{DiagoThrInit: 0}
			},
			want: ErrorList{{Kind: ErrorKindDiagoThrInit, Value: 0}},
		},
		{
			name: "alat and ecutwfc keep check order",
			modify: func(in *Input) {
				in.System.Ecutwfc = -60
				in.System.Alat = 0
			},
			want: ErrorList{
				{Kind: ErrorKindLatticeConstant, Value: 0},
				{Kind: ErrorKindEcutwfc, Value: -60},
			},
		},
		{
			name: "ecutrho",
			modify: func(in *Input) {
				in.System.Ecutrho = 0
			},
			want: ErrorList{{Kind: ErrorKindEcutrho, Value: 0}},
		},
		{
			name: "smearing width",
			modify: func(in *Input) {
				in.System.Occupations = Smearing{Kind: SmearingMarzariVanderbilt, Degauss: 0}
			},
			want: ErrorList{{Kind: ErrorKindSmearing, Value: 0}},
		},
		{
			name: "positive smearing width",
			modify: func(in *Input) {
				in.System.Occupations = Smearing{Kind: SmearingGaussian, Degauss: 0.02}
			},
		},
		{
			name: "one error per bad species",
			modify: func(in *Input) {
				in.Species = []Species{
					{Label: "Fe", Mass: 0, PseudopotentialFilename: "Fe.UPF"},
					{Label: "O", Mass: 15.999, PseudopotentialFilename: "O.UPF"},
					{Label: "Co", Mass: -58.9, PseudopotentialFilename: "Co.UPF"},
				}
			},
			want: ErrorList{
				{Kind: ErrorKindMass, Label: "Fe", Value: 0},
				{Kind: ErrorKindMass, Label: "Co", Value: -58.9},
			},
		},
		{
			name:   "nil calculation",
			modify: func(in *Input) { in.Calculation = nil },
			want:   ErrorList{{Kind: ErrorKindCalculation, Label: "<nil>"}},
		},
		{
			name:   "pointer calculation with bad threshold",
			modify: func(in *Input) { in.Calculation = &Scf{ConvThr: -1} },
			want:   ErrorList{{Kind: ErrorKindCalculation, Label: "*pw.Scf"}},
		},
		{
			name:   "pointer calculation with good threshold",
			modify: func(in *Input) { in.Calculation = &Nscf{DiagoThrInit: 1e-6} },
			want:   ErrorList{{Kind: ErrorKindCalculation, Label: "*pw.Nscf"}},
		},
		{
			name:   "nil occupations",
			modify: func(in *Input) { in.System.Occupations = nil },
			want:   ErrorList{{Kind: ErrorKindOccupations, Label: "<nil>"}},
		},
		{
			name: "pointer smearing with bad degauss",
			modify: func(in *Input) {
				in.System.Occupations = &Smearing{Kind: SmearingGaussian, Degauss: -0.1}
			},
			want: ErrorList{{Kind: ErrorKindOccupations, Label: "*pw.Smearing"}},
		},
		{
			name:   "pointer fixed occupations",
			modify: func(in *Input) { in.System.Occupations = &Fixed{} },
			want:   ErrorList{{Kind: ErrorKindOccupations, Label: "*pw.Fixed"}},
		},
		{
			name:   "valid uniform grid",
			modify: func(in *Input) { in.KPoints = KPointsCrystalUniform{4, 4, 4} },
		},
		{
			name:   "uniform grid with zero dimension",
			modify: func(in *Input) { in.KPoints = KPointsCrystalUniform{4, 0, 4} },
			want:   ErrorList{{Kind: ErrorKindKPointGrid, Label: "4x0x4"}},
		},
		{
			name:   "uniform grid that overflows",
			modify: func(in *Input) { in.KPoints = KPointsCrystalUniform{1 << 32, 1 << 32, 1} },
			want:   ErrorList{{Kind: ErrorKindKPointGrid, Label: "4294967296x4294967296x1"}},
		},
		{
			name: "everything wrong",
			modify: func(in *Input) {
				in.System.Alat = -1
				in.Calculation = Scf{ConvThr: -1}
				in.System.Ecutwfc = 0
				in.System.Ecutrho = -1
				in.System.Occupations = Smearing{Kind: SmearingFermiDirac, Degauss: -0.1}
				in.Species[0].Mass = 0
				in.KPoints = KPointsCrystalUniform{0, 0, 0}
			},
			want: ErrorList{
				{Kind: ErrorKindLatticeConstant, Value: -1},
				{Kind: ErrorKindConvThr, Value: -1},
				{Kind: ErrorKindEcutwfc, Value: 0},
				{Kind: ErrorKindEcutrho, Value: -1},
				{Kind: ErrorKindSmearing, Value: -0.1},
				{Kind: ErrorKindMass, Label: "Fe", Value: 0},
				{Kind: ErrorKindKPointGrid, Label: "0x0x0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := minimalInput()
			tt.modify(input)

			err := Validate(input)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var got ErrorList
			if !errors.As(err, &got) {
				t.Fatalf("Validate() error = %v (%T), want ErrorList", err, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_NaN(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name   string
		modify func(*Input)
		want   ErrorKind
	}{
		{name: "alat", modify: func(in *Input) { in.System.Alat = nan }, want: ErrorKindLatticeConstant},
		{name: "conv_thr", modify: func(in *Input) { in.Calculation = Scf{ConvThr: nan} }, want: ErrorKindConvThr},
		{name: "nscf diago_thr_init", modify: func(in *Input) { in.Calculation = Nscf{DiagoThrInit: nan} }, want: ErrorKindDiagoThrInit},
		{name: "bands diago_thr_init", modify: func(in *Input) { in.Calculation = Bands{DiagoThrInit: nan} }, want: ErrorKindDiagoThrInit},
		{name: "ecutwfc", modify: func(in *Input) { in.System.Ecutwfc = nan }, want: ErrorKindEcutwfc},
		{name: "ecutrho", modify: func(in *Input) { in.System.Ecutrho = nan }, want: ErrorKindEcutrho},
		{
			name:   "degauss",
			modify: func(in *Input) { in.System.Occupations = Smearing{Kind: SmearingGaussian, Degauss: nan} },
			want:   ErrorKindSmearing,
		},
		{name: "mass", modify: func(in *Input) { in.Species[0].Mass = nan }, want: ErrorKindMass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := minimalInput()
			tt.modify(input)

			var got ErrorList
			if !errors.As(Validate(input), &got) {
				t.Fatal("Validate() accepted NaN")
			}
			if len(got) != 1 || got[0].Kind != tt.want || !math.IsNaN(got[0].Value) {
				t.Errorf("Validate() = %v, want one %s error carrying NaN", got, tt.want)
			}
		})
	}
}

func TestValidate_ErrorText(t *testing.T) {
	input := minimalInput()
	input.System.Alat = 0
	input.Species[0].Mass = -1

	err := Validate(input)
	if err == nil {
		t.Fatal("Validate() error = nil")
	}

	want := "Lattice constant `alat` must be positive; got 0 instead.\n" +
		"Atomic mass must be positive; for atom Fe got -1 instead."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidate_ErrorsIs(t *testing.T) {
	input := minimalInput()
	input.System.Ecutrho = 0

	err := Validate(input)
	if !errors.Is(err, &InputError{Kind: ErrorKindEcutrho}) {
		t.Errorf("errors.Is(%v, ecutrho) = false", err)
	}
	if errors.Is(err, &InputError{Kind: ErrorKindEcutwfc}) {
		t.Errorf("errors.Is(%v, ecutwfc) = true", err)
	}
}

func TestValidate_PositiveValuesAlwaysPass(t *testing.T) {
	values := []float64{1e-12, 0.5, 1, 3, 60, 1e6}

	for _, alat := range values {
		for _, ecut := range values {
			input := minimalInput()
			input.System.Alat = alat
			input.System.Ecutwfc = ecut
			input.System.Ecutrho = ecut * 4
			input.Calculation = Nscf{DiagoThrInit: ecut}

			if err := Validate(input); err != nil {
				t.Errorf("Validate(alat=%v, ecut=%v) error = %v", alat, ecut, err)
			}
		}
	}
}
