// Package namelist provides the building blocks shared by the Quantum ESPRESSO
// input renderers: namelist group framing, field lines, number formatting and
// the ordered error list returned by validators.
//
// # Field Lines
//
// Every namelist field is rendered on its own line, indented by four spaces
// and terminated by a comma:
//
//	 &control
//	    calculation='scf',
//	    wf_collect=.true.,
//	 /
//
// Strings are always single-quoted. Booleans use the Fortran logical tokens
// .true. and .false. and are omitted entirely when unset.
//
// # Numbers
//
// Float renders the shortest decimal form without an exponent (3.0 renders
// as 3). Sci renders exponent form (1e-8) and is reserved for the fields the
// target programs expect in that notation.
package namelist
