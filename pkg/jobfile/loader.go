package jobfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/qeforge/qeforge/pkg/namelist"
	"github.com/qeforge/qeforge/pkg/telemetry"
)

// Format is the source format of a job document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// ErrUnknownFormat is returned for files whose extension is not one of
// .yaml, .yml, .json or .cue.
var ErrUnknownFormat = errors.New("unknown job file format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ValidationErrors is the list returned when a job document is malformed.
type ValidationErrors = namelist.ErrorList[*ValidationError]

// Loader reads job documents. A Loader is safe for sequential reuse; it
// holds a CUE context that is not safe for concurrent use.
type Loader struct {
	ctx       *cue.Context
	schemas   *SchemaRegistry
	validator *validator.Validate
}

// NewLoader creates a loader with the built-in job schema.
func NewLoader() *Loader {
	ctx := cuecontext.New()

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Loader{
		ctx:       ctx,
		schemas:   NewSchemaRegistry(ctx),
		validator: v,
	}
}

// Schemas returns the loader's schema registry.
func (l *Loader) Schemas() *SchemaRegistry {
	return l.schemas
}

// Load reads and checks the job document at path.
func (l *Loader) Load(ctx context.Context, path string) (*Job, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	return l.Parse(ctx, data, format, path)
}

// Parse decodes and checks a job document. filename is used in error
// positions only. Document problems are returned as ValidationErrors.
func (l *Loader) Parse(ctx context.Context, data []byte, format Format, filename string) (*Job, error) {
	logger := telemetry.FromContext(ctx).NewComponentLogger("jobfile").WithJob(filename)

	switch format {
	case FormatYAML, FormatJSON:
	case FormatCUE:
		exported, errs := l.exportCUE(data, filename)
		if len(errs) > 0 {
			return nil, errs
		}
		data = exported
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var job Job
	if errs := decode(data, filename, &job); len(errs) > 0 {
		return nil, errs
	}

	if errs := l.checkStruct(&job, filename); len(errs) > 0 {
		logger.Debugf("job document failed %d structural checks", len(errs))
		return nil, errs
	}

	logger.WithProgram(job.Program).Debug("job document loaded")
	return &job, nil
}

// exportCUE unifies a CUE document with #Job and exports it as JSON.
func (l *Loader) exportCUE(data []byte, filename string) ([]byte, ValidationErrors) {
	def, err := l.schemas.Definition(JobSchemaName, "#Job")
	if err != nil {
		return nil, ValidationErrors{{File: filename, Message: err.Error()}}
	}

	val := l.ctx.CompileBytes(data, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return nil, convertCUEErrors(err)
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, convertCUEErrors(err)
	}

	out, err := unified.MarshalJSON()
	if err != nil {
		return nil, convertCUEErrors(err)
	}
	return out, nil
}

// convertCUEErrors converts CUE errors to ValidationErrors with positions.
func convertCUEErrors(err error) ValidationErrors {
	var list ValidationErrors

	for _, e := range cueerrors.Errors(err) {
		ve := &ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: cueerrors.Details(e, nil),
		}
		if pos := cueerrors.Positions(e); len(pos) > 0 {
			ve.File = pos[0].Filename()
			ve.Line = pos[0].Line()
			ve.Column = pos[0].Column()
		}
		list = append(list, ve)
	}

	return list
}

func decode(data []byte, filename string, job *Job) ValidationErrors {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(job)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return ValidationErrors{{File: filename, Message: "empty job document"}}
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		list := make(ValidationErrors, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			list = append(list, &ValidationError{File: filename, Message: msg})
		}
		return list
	}

	return ValidationErrors{{File: filename, Message: err.Error()}}
}

func (l *Loader) checkStruct(job *Job, filename string) ValidationErrors {
	err := l.validator.Struct(job)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{File: filename, Message: err.Error()}}
	}

	list := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		list = append(list, &ValidationError{
			File:    filename,
			Path:    strings.TrimPrefix(fe.Namespace(), "Job."),
			Message: describe(fe),
		})
	}
	return list
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return fmt.Sprintf("is required when %s", fe.Param())
	case "required_unless":
		return fmt.Sprintf("is required unless %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
