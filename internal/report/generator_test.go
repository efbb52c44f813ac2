package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleForecast() models.ForecastResult {
	return models.ForecastResult{
		History:  models.MonthlySeries{{Month: "2024-01", Amount: 100}, {Month: "2024-02", Amount: 200}},
		Forecast: []models.ForecastPoint{{Month: "2024-03", Predicted: 300}},
		Method:   "linear_trend",
		Outcome:  models.OutcomeOK,
	}
}

func TestNewGenerator_Formats(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{" yml ", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := NewGenerator(tt.input, logging.NewMockLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g.Format())
		})
	}

	_, err := NewGenerator("xml", logging.NewMockLogger())
	assert.EqualError(t, err, "unsupported report format: xml")
}

func TestGenerator_JSON(t *testing.T) {
	g, err := NewGenerator(FormatJSON, logging.NewMockLogger())
	require.NoError(t, err)

	out, err := g.Generate(sampleForecast())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "ok", decoded["outcome"])
	assert.Equal(t, "linear_trend", decoded["method"])
	assert.NotContains(t, decoded, "error")
	assert.Len(t, decoded["history"], 2)
}

func TestGenerator_YAML(t *testing.T) {
	g, err := NewGenerator(FormatYAML, logging.NewMockLogger())
	require.NoError(t, err)

	out, err := g.Generate(sampleForecast())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "ok", decoded["outcome"])
	assert.Contains(t, string(out), "2024-03")
}

func TestGenerator_Write(t *testing.T) {
	g, err := NewGenerator(FormatJSON, logging.NewMockLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, map[string]bool{"anomalous": true}))

	assert.Equal(t, "{\n  \"anomalous\": true\n}\n", buf.String())
}

func TestGenerator_UnsupportedValue(t *testing.T) {
	logger := logging.NewMockLogger()
	g, err := NewGenerator(FormatJSON, logger)
	require.NoError(t, err)

	_, err = g.Generate(make(chan int))

	assert.Error(t, err)
	assert.True(t, logger.HasEntry("ERROR", "Failed to marshal JSON report"))
}
