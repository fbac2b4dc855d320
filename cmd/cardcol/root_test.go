package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	err := writeOutput(&buf, "", func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}

func TestWriteOutputFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeOutput(&buf, path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteOutputErrors(t *testing.T) {
	boom := errors.New("boom")
	err := writeOutput(io.Discard, filepath.Join(t.TempDir(), "out.txt"), func(io.Writer) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = writeOutput(io.Discard, filepath.Join(t.TempDir(), "missing", "out.txt"), func(io.Writer) error {
		t.Fatal("write must not run when the file cannot be created")
		return nil
	})
	assert.Error(t, err)
}
