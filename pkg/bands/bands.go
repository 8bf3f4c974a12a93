// Package bands models and renders input files for bands.x, the Quantum
// ESPRESSO band structure post-processor.
package bands

import (
	"errors"

	"github.com/qeforge/qeforge/pkg/fileio"
	"github.com/qeforge/qeforge/pkg/namelist"
)

// Input is the &bands namelist. Nil fields are left to the bands.x defaults.
//
// Collinear spin-polarized runs would also need spin_component, which is not
// modelled yet.
type Input struct {
	Prefix  *string
	OutDir  *string
	Filband *string
	Lsym    bool
}

var (
	// ErrOutDirEncoding is returned when OutDir is not valid UTF-8.
	ErrOutDirEncoding = errors.New("`outdir` is not valid UTF-8")

	// ErrFilbandEncoding is returned when Filband is not valid UTF-8.
	ErrFilbandEncoding = errors.New("`filband` is not valid UTF-8")
)

// MakeInputFile renders input as bands.x input text.
func MakeInputFile(input *Input) (string, error) {
	var lines []string

	if input.Prefix != nil {
		lines = namelist.PushStringField(lines, "prefix", *input.Prefix)
	}

	if input.OutDir != nil {
		path, err := namelist.CheckUTF8(*input.OutDir, ErrOutDirEncoding)
		if err != nil {
			return "", err
		}
		lines = namelist.PushStringField(lines, "outdir", path)
	}

	if input.Filband != nil {
		path, err := namelist.CheckUTF8(*input.Filband, ErrFilbandEncoding)
		if err != nil {
			return "", err
		}
		lines = namelist.PushStringField(lines, "filband", path)
	}

	lines = namelist.PushBoolField(lines, "lsym", &input.Lsym)

	return namelist.Group("bands", lines), nil
}

// WriteInputFile renders input and writes it to path.
func WriteInputFile(input *Input, path string) error {
	text, err := MakeInputFile(input)
	if err != nil {
		return err
	}
	return fileio.WriteFile(path, text)
}
