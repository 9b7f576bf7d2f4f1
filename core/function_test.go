package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testWeatherFunction() *Function {
	return &Function{
		Name:        "get_weather",
		Description: "Look up the current weather",
		Parameters: []Parameter{
			{Name: "location", Type: "string", Description: "City name"},
			{Name: "unit", Type: "string", Optional: true, Enum: []string{"celsius", "fahrenheit"}},
			{Name: "context_variables", ContextVariables: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return "sunny", nil
		},
	}
}

// -------------------- Definition Tests --------------------

func TestFunction_Definition(t *testing.T) {
	def := testWeatherFunction().Definition()

	assert.Equal(t, "get_weather", def.Name)
	assert.Equal(t, "Look up the current weather", def.Description)

	props, ok := def.Parameters["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "location")
	assert.Contains(t, props, "unit")
	assert.NotContains(t, props, "context_variables", "context parameter must not be advertised")

	unit := props["unit"].(map[string]any)
	assert.Equal(t, []string{"celsius", "fahrenheit"}, unit["enum"])

	required, _ := def.Parameters["required"].([]string)
	assert.Equal(t, []string{"location"}, required, "optional and context parameters must not be required")
}

func TestFunction_DefinitionDefaults(t *testing.T) {
	fn := &Function{
		Name:       "echo",
		Parameters: []Parameter{{Name: "x"}},
	}

	def := fn.Definition()
	assert.Equal(t, "function: echo", def.Description)

	props := def.Parameters["properties"].(map[string]any)
	x := props["x"].(map[string]any)
	assert.Equal(t, "string", x["type"], "missing type tag defaults to string")
}

func TestFunction_DefinitionNoParameters(t *testing.T) {
	fn := &Function{Name: "ping"}
	def := fn.Definition()

	props := def.Parameters["properties"].(map[string]any)
	assert.Empty(t, props)
	_, hasRequired := def.Parameters["required"]
	assert.False(t, hasRequired)
}

// -------------------- Validation Tests --------------------

func TestFunction_ValidateArguments(t *testing.T) {
	fn := testWeatherFunction()

	// Success, optional omitted
	err := fn.ValidateArguments(map[string]any{"location": "Berlin"})
	assert.NoError(t, err)

	// Missing required
	err = fn.ValidateArguments(map[string]any{"unit": "celsius"})
	assert.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "location", vErr.Field)

	// Wrong type
	err = fn.ValidateArguments(map[string]any{"location": 42})
	assert.Error(t, err)
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "expected type string")

	// Extra fields tolerated
	err = fn.ValidateArguments(map[string]any{"location": "Berlin", "bogus": true})
	assert.NoError(t, err)
}

func TestFunction_ValidateArgumentsSkipsContextParameter(t *testing.T) {
	fn := testWeatherFunction()

	// The injected store is a map, not a string; validation must ignore it.
	err := fn.ValidateArguments(map[string]any{
		"location":          "Berlin",
		"context_variables": map[string]any{"k": "v"},
	})
	assert.NoError(t, err)
}

func TestFunction_ContextParameter(t *testing.T) {
	fn := testWeatherFunction()
	p, ok := fn.ContextParameter()
	assert.True(t, ok)
	assert.Equal(t, "context_variables", p.Name)

	plain := &Function{Name: "echo", Parameters: []Parameter{{Name: "x"}}}
	_, ok = plain.ContextParameter()
	assert.False(t, ok)
}

func TestFunction_Callable(t *testing.T) {
	var nilFn *Function
	assert.False(t, nilFn.Callable())
	assert.False(t, (&Function{Name: "x"}).Callable())
	assert.True(t, testWeatherFunction().Callable())
}
