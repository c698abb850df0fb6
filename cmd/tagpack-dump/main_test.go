package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/clockworklabs/tagpack/pkg/tagpack/codec"
	"github.com/clockworklabs/tagpack/pkg/tagpack/inspect"
)

func dump(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestTextFromHex(t *testing.T) {
	out, _, err := dump(t, "b7 01 03\n02 88 04 00\n", "--hex")
	require.NoError(t, err)
	assert.Equal(t, "struct\n  @0x1 uint 3\n  @0x2 int -5\n", out)
}

func TestFileInput(t *testing.T) {
	data, err := codec.Marshal(codec.Slice(codec.String()), []string{"a", "b"})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "in.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, _, err := dump(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "seq[2]\n  string \"a\"\n  string \"b\"\n", out)

	_, _, err = dump(t, "", filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStructuredFormats(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		out, _, err := dump(t, "0x0580", "--hex", "--format", "json")
		require.NoError(t, err)
		var nodes []inspect.Node
		require.NoError(t, gojson.Unmarshal([]byte(out), &nodes))
		require.Len(t, nodes, 2)
		assert.Equal(t, inspect.KindUint, nodes[0].Kind)
		assert.Equal(t, "5", nodes[0].Value)
		assert.Equal(t, inspect.KindNone, nodes[1].Kind)
	})

	t.Run("YAML", func(t *testing.T) {
		out, _, err := dump(t, "8c78", "--hex", "-f", "yaml")
		require.NoError(t, err)
		var nodes []inspect.Node
		require.NoError(t, yaml.Unmarshal([]byte(out), &nodes))
		require.Len(t, nodes, 1)
		assert.Equal(t, inspect.KindString, nodes[0].Kind)
		assert.Equal(t, `"x"`, nodes[0].Value)
	})

	t.Run("EmptyJSON", func(t *testing.T) {
		out, _, err := dump(t, "", "--format=json")
		require.NoError(t, err)
		assert.Equal(t, "[]\n", out)
	})
}

func TestSingle(t *testing.T) {
	_, _, err := dump(t, "0102", "--hex", "--single")
	assert.ErrorIs(t, err, codec.ErrTrailingData)

	out, _, err := dump(t, "0102", "--hex")
	require.NoError(t, err)
	assert.Equal(t, "uint 1\nuint 2\n", out)
}

func TestErrors(t *testing.T) {
	t.Run("PartialOutput", func(t *testing.T) {
		out, _, err := dump(t, "05 8e 61", "--hex")
		assert.ErrorIs(t, err, codec.ErrInsufficientData)
		assert.Equal(t, "uint 5\n", out)
	})

	t.Run("BadHex", func(t *testing.T) {
		_, _, err := dump(t, "zz", "--hex")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading stdin")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, _, err := dump(t, "", "--format", "xml")
		assert.EqualError(t, err, `unknown format "xml" (want text, json or yaml)`)
	})

	t.Run("ExtraArgument", func(t *testing.T) {
		_, _, err := dump(t, "", "a", "b")
		assert.EqualError(t, err, "unexpected argument: b")
	})
}

func TestHelpAndVerbose(t *testing.T) {
	_, stderr, err := dump(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "--format")

	_, stderr, err = dump(t, "01", "--hex", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=\"read input\"")
	assert.Contains(t, stderr, "values=1")
}
