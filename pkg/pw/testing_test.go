package pw

func identityCell() Cell {
	return Cell{
		Units: LatticeAlat,
		Cell:  [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
}

// minimalInput returns a valid scf input with a single Fe atom.
func minimalInput() *Input {
	return &Input{
		Calculation: Scf{ConvThr: 1e-8},
		Control: Control{
			DiskIO: ptr(DiskIOLow),
		},
		System: System{
			Ibrav:       Free{Cell: identityCell()},
			Alat:        3.0,
			Ecutwfc:     60.0,
			Ecutrho:     240.0,
			Occupations: Tetrahedra{},
		},
		Species: []Species{
			{Label: "Fe", Mass: 55.845, PseudopotentialFilename: "Fe.UPF"},
		},
		AtomicPositions: AtomicPositions{
			CoordinateType: PositionsCrystal,
			Coordinates: []AtomCoordinate{
				{Species: "Fe", R: [3]float64{0, 0, 0}},
			},
		},
		KPoints: KPointsAutomatic{Nk: [3]uint64{8, 8, 8}},
	}
}

func ptr[T any](v T) *T {
	return &v
}
