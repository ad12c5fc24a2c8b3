package maincmd_test

import (
	"testing"

	"github.com/jasedbrown/rlox/internal/maincmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNoArgsDefaultsToREPL(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs(nil)
	require.NoError(t, c.Validate())
}

func TestValidateSingleScriptPathRuns(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"script.rlox"})
	require.NoError(t, c.Validate())
}

func TestValidateTokenizeRequiresFile(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"tokenize"})
	err := c.Validate()
	assert.Error(t, err)
}

func TestValidateTooManyFilesIsError(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"parse", "a.rlox", "b.rlox"})
	err := c.Validate()
	assert.Error(t, err)
}

func TestValidateParseWithSingleFile(t *testing.T) {
	c := &maincmd.Cmd{}
	c.SetArgs([]string{"parse", "a.rlox"})
	require.NoError(t, c.Validate())
}
