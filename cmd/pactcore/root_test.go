package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandPrintsVersionInfo(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
}

func TestServeRequiresPactFlagOrConfig(t *testing.T) {
	servePactFile = ""
	cfgFile = ""
	rootCmd.SetArgs([]string{"serve"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestMismatchesRequiresPactFlagOrConfig(t *testing.T) {
	mismatchesPactFile = ""
	cfgFile = ""
	rootCmd.SetArgs([]string{"mismatches"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
