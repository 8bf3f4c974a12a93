// Package pw2wannier90 models and renders input files for pw2wannier90.x,
// the interface between pw.x and Wannier90.
package pw2wannier90

import (
	"errors"

	"github.com/qeforge/qeforge/pkg/fileio"
	"github.com/qeforge/qeforge/pkg/namelist"
)

// Input is the &inputpp namelist.
//
// Prefix is required here although pw.x and bands.x treat it as optional:
// pw2wannier90.x has a different default, so relying on it silently reads the
// wrong save directory. Collinear spin-polarized runs would also need
// spin_component, which is not modelled yet.
type Input struct {
	Prefix   string
	OutDir   *string
	Seedname string
	WriteUnk bool
	WriteAmn bool
	WriteMmn bool
	WriteSpn bool
}

// ErrOutDirEncoding is returned when OutDir is not valid UTF-8.
var ErrOutDirEncoding = errors.New("`outdir` is not valid UTF-8")

// MakeInputFile renders input as pw2wannier90.x input text.
func MakeInputFile(input *Input) (string, error) {
	var lines []string
	lines = namelist.PushStringField(lines, "prefix", input.Prefix)

	if input.OutDir != nil {
		path, err := namelist.CheckUTF8(*input.OutDir, ErrOutDirEncoding)
		if err != nil {
			return "", err
		}
		lines = namelist.PushStringField(lines, "outdir", path)
	}

	lines = namelist.PushStringField(lines, "seedname", input.Seedname)

	lines = namelist.PushBoolField(lines, "write_unk", &input.WriteUnk)
	lines = namelist.PushBoolField(lines, "write_amn", &input.WriteAmn)
	lines = namelist.PushBoolField(lines, "write_mmn", &input.WriteMmn)
	lines = namelist.PushBoolField(lines, "write_spn", &input.WriteSpn)

	return namelist.Group("inputpp", lines), nil
}

// WriteInputFile renders input and writes it to path.
func WriteInputFile(input *Input, path string) error {
	text, err := MakeInputFile(input)
	if err != nil {
		return err
	}
	return fileio.WriteFile(path, text)
}
