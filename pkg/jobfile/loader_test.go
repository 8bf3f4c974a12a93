package jobfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const ironYAML = `
program: pw
pw:
  calculation: {type: scf, conv_thr: 1.0e-8}
  control: {disk_io: low}
  system:
    ibrav: {type: free, units: alat, cell: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]}
    alat: 3
    ecutwfc: 60
    ecutrho: 240
    occupations: {type: tetrahedra}
  species:
    - {label: Fe, mass: 55.845, pseudopotential: Fe.UPF}
  atomic_positions:
    coordinate_type: crystal
    coordinates:
      - {species: Fe, r: [0, 0, 0]}
  k_points: {type: automatic, nk: [8, 8, 8]}
`

const ironJSON = `{
  "program": "pw",
  "pw": {
    "calculation": {"type": "scf", "conv_thr": 1e-8},
    "control": {"disk_io": "low"},
    "system": {
      "ibrav": {"type": "free", "units": "alat", "cell": [[1, 0, 0], [0, 1, 0], [0, 0, 1]]},
      "alat": 3,
      "ecutwfc": 60,
      "ecutrho": 240,
      "occupations": {"type": "tetrahedra"}
    },
    "species": [{"label": "Fe", "mass": 55.845, "pseudopotential": "Fe.UPF"}],
    "atomic_positions": {
      "coordinate_type": "crystal",
      "coordinates": [{"species": "Fe", "r": [0, 0, 0]}]
    },
    "k_points": {"type": "automatic", "nk": [8, 8, 8]}
  }
}`

const ironCUE = `
program: "pw"
pw: {
	calculation: {type: "scf", conv_thr: 1e-8}
	control: disk_io: "low"
	system: {
		ibrav: {type: "free", units: "alat", cell: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]}
		alat:    3
		ecutwfc: 60
		ecutrho: 4 * ecutwfc
		occupations: type: "tetrahedra"
	}
	species: [{label: "Fe", mass: 55.845, pseudopotential: "Fe.UPF"}]
	atomic_positions: {
		coordinate_type: "crystal"
		coordinates: [{species: "Fe", r: [0, 0, 0]}]
	}
	k_points: {type: "automatic", nk: [8, 8, 8]}
}
`

const ironText = ` &control
    calculation='scf',
    disk_io='low',
 /
 &system
    ibrav=0,
    celldm(1)=3,
    nat=1,
    ntyp=1,
    ecutwfc=60,
    ecutrho=240,
    occupations='tetrahedra',
 /
 &electrons
    conv_thr=1e-8,
 /
ATOMIC_SPECIES
 Fe 55.845 Fe.UPF
CELL_PARAMETERS alat
 1 0 0
 0 1 0
 0 0 1
ATOMIC_POSITIONS crystal
 Fe 0 0 0
K_POINTS automatic
 8 8 8 0 0 0`

func TestLoader_ParseFormats(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{name: "yaml", format: FormatYAML, data: ironYAML},
		{name: "json", format: FormatJSON, data: ironJSON},
		{name: "cue", format: FormatCUE, data: ironCUE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := loader.Parse(ctx, []byte(tt.data), tt.format, "iron."+string(tt.format))
			require.NoError(t, err)
			require.Equal(t, ProgramPW, job.Program)

			got, err := job.Render()
			require.NoError(t, err)
			if diff := cmp.Diff(ironText, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iron.yml")
	require.NoError(t, os.WriteFile(path, []byte(ironYAML), 0o644))

	job, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, job.PW)
	require.Len(t, job.PW.Species, 1)
	require.Equal(t, "Fe", job.PW.Species[0].Label)
}

func TestLoader_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown extension", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "job.toml"))
		require.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoader_ParseValidationErrors(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	tests := []struct {
		name     string
		format   Format
		data     string
		wantPath string
		contains string
	}{
		{
			name:     "empty document",
			format:   FormatYAML,
			data:     "",
			contains: "empty job document",
		},
		{
			name:     "missing program",
			format:   FormatYAML,
			data:     "output: x.in\n",
			wantPath: "program",
			contains: "is required",
		},
		{
			name:     "unknown program",
			format:   FormatYAML,
			data:     "program: cp\n",
			wantPath: "program",
			contains: "must be one of",
		},
		{
			name:     "missing section",
			format:   FormatYAML,
			data:     "program: bands\n",
			wantPath: "bands",
			contains: "is required when",
		},
		{
			name:     "unknown key",
			format:   FormatYAML,
			data:     "program: bands\nbands: {lsym: true}\nextra: 1\n",
			contains: "extra",
		},
		{
			name:     "wrong type",
			format:   FormatYAML,
			data:     "program: bands\nbands: {lsym: maybe}\n",
			contains: "maybe",
		},
		{
			name:     "pw2wannier90 without seedname",
			format:   FormatYAML,
			data:     "program: pw2wannier90\npw2wannier90: {prefix: si}\n",
			wantPath: "pw2wannier90.seedname",
			contains: "is required",
		},
		{
			name:     "cue value outside schema",
			format:   FormatCUE,
			data:     "program: \"pw\"\npw: system: alat: \"large\"\n",
			contains: "alat",
		},
		{
			name:     "cue syntax error",
			format:   FormatCUE,
			data:     "program: {\n",
			contains: "job.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse(ctx, []byte(tt.data), tt.format, "job."+string(tt.format))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %T", err)
			require.NotEmpty(t, verrs)

			if tt.wantPath != "" {
				paths := make([]string, len(verrs))
				for i, e := range verrs {
					paths[i] = e.Path
				}
				require.Contains(t, paths, tt.wantPath)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a.yaml", want: FormatYAML},
		{path: "a.YML", want: FormatYAML},
		{path: "dir/a.json", want: FormatJSON},
		{path: "a.cue", want: FormatCUE},
		{path: "a.in", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemaRegistry(t *testing.T) {
	loader := NewLoader()
	sr := loader.Schemas()

	require.Equal(t, []string{JobSchemaName}, sr.ListSchemas())

	def, err := sr.Definition(JobSchemaName, "#Job")
	require.NoError(t, err)
	require.True(t, def.Exists())

	_, err = sr.Definition(JobSchemaName, "#Missing")
	require.Error(t, err)

	_, err = sr.Definition("other", "#Job")
	require.Error(t, err)

	require.Error(t, sr.RegisterSchema("broken", "a: {"))
}
