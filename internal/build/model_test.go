package build

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestDefaults(t *testing.T) {
	var req BuildRequest
	require.NoError(t, json.Unmarshal([]byte(`{"preferences":{"purpose":"Gaming","budget":1500}}`), &req))

	require.NotNil(t, req.Preferences)
	assert.True(t, req.IncludePeripherals)
	assert.True(t, req.IncludeAssemblyGuide)
	assert.Equal(t, "USD", req.Preferences.Currency)
	assert.Equal(t, 1, req.Preferences.MonitorCount)
	assert.Equal(t, "1500", req.Preferences.Budget.String())
}

func TestBuildRequestExplicitValuesWin(t *testing.T) {
	body := `{"preferences":{"budget":"999.5","currency":"EUR","monitorCount":3},"includePeripherals":false,"includeAssemblyGuide":false}`

	var req BuildRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.False(t, req.IncludePeripherals)
	assert.False(t, req.IncludeAssemblyGuide)
	assert.Equal(t, "EUR", req.Preferences.Currency)
	assert.Equal(t, 3, req.Preferences.MonitorCount)
	assert.Equal(t, "999.5", req.Preferences.Budget.String())
}

func TestValidateRequest(t *testing.T) {
	svc := NewService(nil, nil, nil)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing preferences", `{}`, msgPreferencesRequired},
		{"null preferences", `{"preferences":null}`, msgPreferencesRequired},
		{"zero budget", `{"preferences":{"budget":0}}`, msgBudgetPositive},
		{"negative budget", `{"preferences":{"budget":-10}}`, msgBudgetPositive},
		{"missing budget", `{"preferences":{"purpose":"Office"}}`, msgBudgetPositive},
		{"valid", `{"preferences":{"budget":0.01}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req BuildRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := svc.ValidateRequest(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Msg)
		})
	}

	t.Run("nil request", func(t *testing.T) {
		var verr *ValidationError
		require.ErrorAs(t, svc.ValidateRequest(nil), &verr)
		assert.Equal(t, msgPreferencesRequired, verr.Msg)
	})
}

func TestBuildResponseNormalizeFillsEmptySequences(t *testing.T) {
	r := BuildResponse{Components: []Component{{Name: "CPU"}}}
	r.Normalize()

	assert.NotNil(t, r.CompatibilityWarnings)
	assert.NotNil(t, r.AssemblyTips)
	assert.NotNil(t, r.RequiredTools)
	assert.NotNil(t, r.RecommendedUpgrades)
	assert.NotNil(t, r.LocalRetailers)
	assert.NotNil(t, r.Components[0].KeyFeatures)
	assert.NotNil(t, r.Components[0].CompatibilityNotes)
	assert.NotNil(t, r.Components[0].RecommendedRetailers)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"assemblyTips":[]`)
	assert.NotContains(t, string(out), "null")
}

func TestPricesEncodeAsNumbers(t *testing.T) {
	var c Component
	require.NoError(t, json.Unmarshal([]byte(`{"name":"GPU","estimatedPrice":549.99}`), &c))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"estimatedPrice":549.99`)
	assert.Contains(t, string(out), `"name":"GPU"`)

	resp := BuildResponse{
		Components:         []Component{c},
		TotalEstimatedCost: decimal.RequireFromString("99999999999999999999.5"),
	}
	out, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"totalEstimatedCost":99999999999999999999.5`)
	assert.Contains(t, string(out), `"components":[{"name":"GPU"`)
	assert.Equal(t, 1, strings.Count(string(out), `"totalEstimatedCost"`))

	out, err = json.Marshal(UpgradeSuggestion{Component: "RAM", EstimatedCost: decimal.NewFromInt(80)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"estimatedCost":80`)
}

func TestPricesLeaveGlobalDecimalEncodingAlone(t *testing.T) {
	assert.False(t, decimal.MarshalJSONWithoutQuotes)

	out, err := json.Marshal(decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, `"5"`, string(out))
}
