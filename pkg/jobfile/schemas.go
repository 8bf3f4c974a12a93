package jobfile

import (
	"fmt"
	"sort"
	"sync"

	"cuelang.org/go/cue"
)

// SchemaRegistry manages the CUE schemas job documents are checked against.
// Schemas are compiled in the registry's context, so values unified with
// them must be compiled in the same context.
type SchemaRegistry struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
	mu      sync.RWMutex
}

// NewSchemaRegistry creates a registry holding the built-in job schema.
func NewSchemaRegistry(ctx *cue.Context) *SchemaRegistry {
	sr := &SchemaRegistry{
		ctx:     ctx,
		schemas: make(map[string]cue.Value),
	}

	if err := sr.RegisterSchema(JobSchemaName, builtinJobSchema); err != nil {
		panic(err)
	}

	return sr
}

// JobSchemaName is the registry name of the built-in job schema. Its
// top-level definition is #Job.
const JobSchemaName = "job"

// RegisterSchema compiles and registers a CUE schema with the given name.
func (sr *SchemaRegistry) RegisterSchema(name, schema string) error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	val := sr.ctx.CompileString(schema, cue.Filename(name+".cue"))
	if err := val.Err(); err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	sr.schemas[name] = val
	return nil
}

// GetSchema retrieves a schema by name.
func (sr *SchemaRegistry) GetSchema(name string) (cue.Value, bool) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	val, ok := sr.schemas[name]
	return val, ok
}

// Definition looks up a definition such as "#Job" inside a named schema.
func (sr *SchemaRegistry) Definition(name, def string) (cue.Value, error) {
	schema, ok := sr.GetSchema(name)
	if !ok {
		return cue.Value{}, fmt.Errorf("schema %s not found", name)
	}

	val := schema.LookupPath(cue.ParsePath(def))
	if !val.Exists() {
		return cue.Value{}, fmt.Errorf("definition %s not found in schema %s", def, name)
	}
	return val, nil
}

// ListSchemas returns all registered schema names in sorted order.
func (sr *SchemaRegistry) ListSchemas() []string {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	names := make([]string, 0, len(sr.schemas))
	for name := range sr.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const builtinJobSchema = `
// Job document: the target program and its configuration.
#Job: {
	program: "pw" | "bands" | "pw2wannier90"

	// Output path of the rendered input. Empty or absent means stdout.
	output?: string

	pw?:           #PW
	bands?:        #Bands
	pw2wannier90?: #PW2Wannier90

	if program == "pw" {pw: #PW}
	if program == "bands" {bands: #Bands}
	if program == "pw2wannier90" {pw2wannier90: #PW2Wannier90}
}

#Count: int & >=0
#Vec3: [number, number, number]

#PW: {
	calculation:      #Calculation
	control?:         #Control
	system:           #System
	efield?:          #Efield
	electrons?:       #Electrons
	species:          [#Species, ...#Species]
	atomic_positions: #Positions
	k_points:         #KPoints
}

#Calculation: {
	type:            "scf" | "nscf" | "bands"
	conv_thr?:       number
	diago_thr_init?: number
	nbnd?:           #Count
	nosym?:          bool
}

#Control: {
	restart_mode?: "from_scratch" | "restart"
	disk_io?:      "low" | "medium" | "high" | "none"
	wf_collect?:   bool
	pseudo_dir?:   string
	outdir?:       string
	prefix?:       string
}

#System: {
	ibrav: {
		type:  "free"
		units: "bohr" | "angstrom" | "alat"
		cell: [#Vec3, #Vec3, #Vec3]
	}
	alat:    number
	ecutwfc: number
	ecutrho: number
	occupations: {
		type:      "smearing" | "tetrahedra" | "tetrahedra_lin" | "tetrahedra_opt" | "fixed"
		smearing?: "gaussian" | "methfessel-paxton" | "marzari-vanderbilt" | "fermi-dirac"
		degauss?:  number
	}
	spin_type?: {
		type:        "non_polarized" | "collinear_polarized" | "noncollinear"
		spin_orbit?: bool
	}
}

#Efield: {
	type:      "tefield"
	dipfield?: bool
	edir:      1 | 2 | 3
	emaxpos:   number
	eopreg:    number
	eamp:      number
}

#Electrons: {
	startingwfc?:     "atomic" | "atomic+random" | "random" | "file"
	diagonalization?: "david" | "cg"
}

#Species: {
	label:           string & !=""
	mass:            number
	pseudopotential: string & !=""
}

#Positions: {
	coordinate_type: "alat" | "bohr" | "angstrom" | "crystal" | "crystal_sg"
	coordinates: [...{
		species: string & !=""
		r:       #Vec3
		if_pos?: [bool, bool, bool]
	}]
}

#KPoints: {
	type:          "crystal" | "crystal_uniform" | "automatic" | "crystal_bands"
	points?:       [...[number, number, number, number]]
	nk?:           [#Count, #Count, #Count]
	sk?:           [bool, bool, bool]
	nk_per_panel?: #Count
	panel_bounds?: [...#Vec3]
}

#Bands: {
	prefix?:  string
	outdir?:  string
	filband?: string
	lsym?:    bool
}

#PW2Wannier90: {
	prefix:     string & !=""
	outdir?:    string
	seedname:   string & !=""
	write_unk?: bool
	write_amn?: bool
	write_mmn?: bool
	write_spn?: bool
}
`
