package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "9.9.9-test"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "replaca version 9.9.9-test")
}

func TestFunctionsCmd_ListsBuiltins(t *testing.T) {
	out, err := execute(t, "functions")

	require.NoError(t, err)
	assert.Contains(t, out, "capitalize")
	assert.Contains(t, out, "titlecase")
	assert.Contains(t, out, "uppercase")
}
