package launch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcs/internal/metric"
	"tcs/internal/model"
)

type countingCounter struct {
	calls [][]string
}

func (c *countingCounter) Increment(val ...string) {
	c.calls = append(c.calls, val)
}

func newTestLauncher(out *bytes.Buffer, c metric.IncrementalCounter) *Launcher {
	return New(WithStdio(nil, out, out), WithCounter(c))
}

func appendTo(file, word string) string {
	return "sh -c 'echo " + word + " >> " + file + "'"
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"pacman", []string{"pacman"}},
		{"mame  -rompath /opt/roms  sf2", []string{"mame", "-rompath", "/opt/roms", "sf2"}},
		{`mame "Street Fighter II"`, []string{"mame", "Street Fighter II"}},
		{`sh -c 'echo a b'`, []string{"sh", "-c", "echo a b"}},
		{`run my\ game`, []string{"run", "my game"}},
	}
	for _, tt := range tests {
		got, err := Split(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Split("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)

	_, err = Split(`echo "unterminated`)
	assert.Error(t, err)
}

func TestRunSequenceInOrderAndDirectory(t *testing.T) {
	dir := t.TempDir()
	before, err := os.Getwd()
	require.NoError(t, err)

	var out bytes.Buffer
	counter := &countingCounter{}
	l := newTestLauncher(&out, counter)

	err = l.Run("Three", model.Launch{
		Directory:   dir,
		PreCommand:  appendTo("order.txt", "pre"),
		Command:     appendTo("order.txt", "main"),
		PostCommand: appendTo("order.txt", "post"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "order.txt"))
	require.NoError(t, err)
	assert.Equal(t, "pre\nmain\npost\n", string(data))

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.Equal(t, [][]string{
		{"Three", "pre", metric.ResultOK},
		{"Three", "main", metric.ResultOK},
		{"Three", "post", metric.ResultOK},
	}, counter.calls)
}

func TestRunContinuesAfterLaunchError(t *testing.T) {
	dir := t.TempDir()
	before, err := os.Getwd()
	require.NoError(t, err)

	var out bytes.Buffer
	counter := &countingCounter{}
	l := newTestLauncher(&out, counter)

	err = l.Run("Broken", model.Launch{
		Directory:   dir,
		PreCommand:  appendTo("order.txt", "pre"),
		Command:     "tcs-test-no-such-executable --flag",
		PostCommand: appendTo("order.txt", "post"),
	})
	require.Error(t, err)

	var le *LaunchError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, StageMain, le.Stage)
	assert.Equal(t, "Broken", le.Item)
	assert.Contains(t, le.Error(), "tcs-test-no-such-executable")

	data, err := os.ReadFile(filepath.Join(dir, "order.txt"))
	require.NoError(t, err)
	assert.Equal(t, "pre\npost\n", string(data))

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.Len(t, counter.calls, 3)
	assert.Equal(t, []string{"Broken", "main", metric.ResultLaunchError}, counter.calls[1])
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	var out bytes.Buffer
	counter := &countingCounter{}
	l := newTestLauncher(&out, counter)

	require.NoError(t, l.Run("Fails", model.Launch{Command: "sh -c 'exit 3'"}))
	assert.Equal(t, [][]string{{"Fails", "main", metric.ResultExitNonZero}}, counter.calls)
}

func TestRunWritesToConfiguredStdout(t *testing.T) {
	var out bytes.Buffer
	l := newTestLauncher(&out, metric.Nop{})

	require.NoError(t, l.Run("Hello", model.Launch{Command: `echo "hello arcade"`}))
	assert.Equal(t, "hello arcade\n", out.String())
}

func TestRunReportsUnsplittableCommand(t *testing.T) {
	var out bytes.Buffer
	l := newTestLauncher(&out, metric.Nop{})

	err := l.Run("Quote", model.Launch{Command: `echo "oops`})
	var le *LaunchError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, StageMain, le.Stage)
}

func TestRunMissingDirectoryFailsEveryStage(t *testing.T) {
	var out bytes.Buffer
	l := newTestLauncher(&out, metric.Nop{})

	err := l.Run("Nowhere", model.Launch{
		Directory:   filepath.Join(t.TempDir(), "missing"),
		PreCommand:  "true",
		Command:     "true",
		PostCommand: "true",
	})
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 3)
}

func TestRunSkipsEmptyOptionalStages(t *testing.T) {
	var out bytes.Buffer
	counter := &countingCounter{}
	l := newTestLauncher(&out, counter)

	require.NoError(t, l.Run("Only", model.Launch{Command: "true"}))
	assert.Equal(t, [][]string{{"Only", "main", metric.ResultOK}}, counter.calls)
}
