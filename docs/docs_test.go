package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Version     string `json:"version"`
		} `json:"info"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	// Must match the general API info comments on package main
	assert.Equal(t, "FundSight API", doc.Info.Title)
	assert.Equal(t, "JSON view API of the FundSight portfolio front", doc.Info.Description)
	assert.Equal(t, "1.0", doc.Info.Version)
	assert.Equal(t, "/api/v1", doc.BasePath)

	for _, path := range []string{"/session", "/summary", "/performance", "/funds/overlap", "/refresh"} {
		assert.Contains(t, doc.Paths, path)
	}
}
