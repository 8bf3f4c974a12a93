// Package jobfile loads job documents that describe one input file for pw.x,
// bands.x or pw2wannier90.x and converts them into the typed models of the
// pw, bands and pw2wannier90 packages.
//
// # Formats
//
// Job documents may be written in YAML, JSON or CUE. The format is chosen by
// file extension. CUE documents are unified with the built-in #Job schema
// before decoding, so type and enum errors carry file, line and column.
// Every document is then decoded strictly (unknown keys are errors) and
// checked with struct tags.
//
// Sum types in the models are written as tagged objects:
//
//	program: pw
//	output: si.scf.in
//	pw:
//	  calculation: {type: scf, conv_thr: 1.0e-8}
//	  system:
//	    ibrav: {type: free, units: alat, cell: [[1,0,0],[0,1,0],[0,0,1]]}
//	    alat: 10.2
//	    ecutwfc: 30
//	    ecutrho: 120
//	    occupations: {type: fixed}
//	  species:
//	    - {label: Si, mass: 28.086, pseudopotential: Si.pz-vbc.UPF}
//	  atomic_positions:
//	    coordinate_type: crystal
//	    coordinates:
//	      - {species: Si, r: [0, 0, 0]}
//	  k_points: {type: automatic, nk: [4, 4, 4]}
//
// # Checks
//
// The loader checks document shape only: required keys, known enum values
// and the key that belongs to the chosen variant. Numeric properties such as
// positive cutoffs are checked by pw.Validate when the job is rendered.
//
// # Watching
//
// Watcher reloads a job file on every change and hands the result to a
// callback; `qeforge watch` uses it to re-render on save.
package jobfile
