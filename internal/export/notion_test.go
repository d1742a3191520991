package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotionExporterConfigured(t *testing.T) {
	testCases := []struct {
		name       string
		apiKey     string
		databaseID string
		configured bool
	}{
		{"Both set", "secret_key", "db123", true},
		{"Missing api key", "", "db123", false},
		{"Missing database id", "secret_key", "", false},
		{"Both missing", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exporter := NewNotionExporter(tc.apiKey, tc.databaseID)
			assert.Equal(t, tc.configured, exporter.Configured())
		})
	}
}

func TestNotionExporterUnconfiguredExport(t *testing.T) {
	exporter := NewNotionExporter("", "")

	count, err := exporter.Export(context.Background(), nil)
	assert.Zero(t, count)
	assert.ErrorIs(t, err, ErrNotionNotConfigured)
}
