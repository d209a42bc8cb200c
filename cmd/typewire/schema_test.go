package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/typewire/internal/typedesc"
)

func TestParseFields(t *testing.T) {
	schema, err := parseFields([]string{
		"id:int32",
		"name:string",
		"tags:[string]",
		"score:float64?",
		"attrs:map[string,int64]",
		"matrix:[[int32]]",
	})
	require.NoError(t, err)

	fields := schema.Fields()
	require.Len(t, fields, 6)
	assert.Same(t, typedesc.Int32, fields[0].Type)
	assert.Same(t, typedesc.String, fields[1].Type)
	assert.Equal(t, "[string]", fields[2].Type.Name())
	assert.Equal(t, "float64?", fields[3].Type.Name())
	assert.Equal(t, "map[string -> int64]", fields[4].Type.Name())
	assert.Equal(t, "[[int32]]", fields[5].Type.Name())
}

func TestParseFields_MapWithNestedKey(t *testing.T) {
	schema, err := parseFields([]string{"idx:map[[byte],string]"})
	require.NoError(t, err)
	assert.Equal(t, "map[[byte] -> string]", schema.Fields()[0].Type.Name())
}

func TestParseFields_Errors(t *testing.T) {
	_, err := parseFields([]string{"noseparator"})
	require.Error(t, err)

	_, err = parseFields([]string{"x:notatype"})
	require.Error(t, err)

	_, err = parseFields([]string{"x:map[int32]"})
	require.Error(t, err)

	_, err = parseFields([]string{":int32"})
	require.Error(t, err)
}

func TestFormatSchema(t *testing.T) {
	schema, err := parseFields([]string{"id:int32", "tags:[string]"})
	require.NoError(t, err)

	assert.Equal(t, "struct {\n  id: int32\n  tags: [string]\n}", formatSchema(schema))
}
