package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripThroughBuffers(t *testing.T) {
	t.Parallel()

	yamlSrc := "name: example\ntags:\n  - one\n  - two\n"

	var encoded bytes.Buffer

	encodeCmd := newRootCmd()
	encodeCmd.SetIn(strings.NewReader(yamlSrc))
	encodeCmd.SetOut(&encoded)
	encodeCmd.SetArgs([]string{"encode", "-"})
	require.NoError(t, encodeCmd.Execute())
	assert.NotEmpty(t, encoded.String())

	var decoded bytes.Buffer

	decodeCmd := newRootCmd()
	decodeCmd.SetIn(strings.NewReader(encoded.String()))
	decodeCmd.SetOut(&decoded)
	decodeCmd.SetArgs([]string{"decode", "-"})
	require.NoError(t, decodeCmd.Execute())

	assert.Contains(t, decoded.String(), "name: example")
	assert.Contains(t, decoded.String(), "one")
	assert.Contains(t, decoded.String(), "two")
}

func TestConvertRoundTripThroughBuffers(t *testing.T) {
	t.Parallel()

	yamlSrc := "greeting: hello\ncount: 2\n"

	var tsionOut bytes.Buffer

	toTsion := newRootCmd()
	toTsion.SetIn(strings.NewReader(yamlSrc))
	toTsion.SetOut(&tsionOut)
	toTsion.SetArgs([]string{"convert", "-", "--from", "yaml", "--to", "tsion"})
	require.NoError(t, toTsion.Execute())
	assert.NotEmpty(t, tsionOut.String())

	var yamlOut bytes.Buffer

	toYAML := newRootCmd()
	toYAML.SetIn(strings.NewReader(tsionOut.String()))
	toYAML.SetOut(&yamlOut)
	toYAML.SetArgs([]string{"convert", "-", "--from", "tsion", "--to", "yaml"})
	require.NoError(t, toYAML.Execute())

	assert.Contains(t, yamlOut.String(), "greeting: hello")
}

func TestConvertRejectsSameFormat(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("a: 1\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"convert", "-", "--from", "yaml", "--to", "yaml"})

	err := cmd.Execute()
	require.Error(t, err)
}
