package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const bandsJob = "program: bands\nbands: {prefix: si, lsym: true}\n"

const bandsText = " &bands\n    prefix='si',\n    lsym=.true.,\n /"

func execute(ctx context.Context, args ...string) (string, error) {
	var out, errOut bytes.Buffer

	cmd := newRootCommand("test", "none", "today")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error", "--no-color"}, args...))

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeJob(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("stdout", func(t *testing.T) {
		path := writeJob(t, dir, "stdout.yaml", bandsJob)

		out, err := execute(ctx, "render", path)
		require.NoError(t, err)
		require.Equal(t, bandsText+"\n", out)
	})

	t.Run("job output relative to job file", func(t *testing.T) {
		path := writeJob(t, dir, "rel.yaml", bandsJob+"output: rel.in\n")

		out, err := execute(ctx, "render", path)
		require.NoError(t, err)
		require.Empty(t, out)

		got, err := os.ReadFile(filepath.Join(dir, "rel.in"))
		require.NoError(t, err)
		require.Equal(t, bandsText, string(got))
	})

	t.Run("output flag wins", func(t *testing.T) {
		path := writeJob(t, dir, "flag.yaml", bandsJob+"output: ignored.in\n")
		dest := filepath.Join(dir, "flag.in")

		_, err := execute(ctx, "render", path, "-o", dest)
		require.NoError(t, err)

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		require.Equal(t, bandsText, string(got))
		require.NoFileExists(t, filepath.Join(dir, "ignored.in"))
	})

	t.Run("invalid job writes nothing", func(t *testing.T) {
		path := writeJob(t, dir, "bad.yaml", "program: bands\n")
		dest := filepath.Join(dir, "bad.in")

		_, err := execute(ctx, "render", path, "-o", dest)
		require.Error(t, err)
		require.NoFileExists(t, dest)
	})
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeJob(t, dir, "good.yaml", bandsJob)
	bad := writeJob(t, dir, "bad.yaml", "program: pw2wannier90\npw2wannier90: {outdir: ./work}\n")

	out, err := execute(context.Background(), "validate", good)
	require.NoError(t, err)
	require.Equal(t, good+": ok (bands)\n", out)

	out, err = execute(context.Background(), "validate", good, bad)
	require.True(t, errors.Is(err, errInvalid))
	require.Contains(t, out, good+": ok (bands)")
	require.Contains(t, out, bad+": invalid")
	require.Contains(t, out, "  - "+bad+": pw2wannier90.prefix: is required")
	require.Contains(t, out, "  - "+bad+": pw2wannier90.seedname: is required")
}

func TestKPoints(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "2x1x1",
			args: []string{"kpoints", "--grid", "2,1,1"},
			want: "K_POINTS crystal\n 2\n 0 0 0 0.5\n 0.5 0 0 0.5\n",
		},
		{
			name:    "empty grid",
			args:    []string{"kpoints", "--grid", "0,4,4"},
			wantErr: true,
		},
		{
			name:    "grid product overflows",
			args:    []string{"kpoints", "--grid", "4294967296,4294967296,1"},
			wantErr: true,
		},
		{
			name:    "grid too large",
			args:    []string{"kpoints", "--grid", "10000000,10000000,1"},
			wantErr: true,
		},
		{
			name:    "two values",
			args:    []string{"kpoints", "--grid", "2,2"},
			wantErr: true,
		},
		{
			name:    "missing flag",
			args:    []string{"kpoints"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(context.Background(), tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("kpoints error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				require.Equal(t, tt.want, out)
			}
		})
	}
}

func TestWatchRendersUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeJob(t, dir, "watch.yaml", bandsJob)
	dest := filepath.Join(dir, "watch.in")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := execute(ctx, "watch", path, "-o", dest, "--debounce", "10ms")
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, bandsText, string(got))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		jobPath   string
		flag      string
		jobOutput string
		want      string
	}{
		{name: "stdout", jobPath: "jobs/a.yaml"},
		{name: "flag", jobPath: "jobs/a.yaml", flag: "x.in", jobOutput: "y.in", want: "x.in"},
		{name: "relative", jobPath: "jobs/a.yaml", jobOutput: "y.in", want: filepath.Join("jobs", "y.in")},
		{name: "absolute", jobPath: "jobs/a.yaml", jobOutput: "/tmp/y.in", want: "/tmp/y.in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.jobPath, tt.flag, tt.jobOutput); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(context.Background(), "--version")
	require.NoError(t, err)
	require.Contains(t, out, "test (commit: none, built: today)")
}
