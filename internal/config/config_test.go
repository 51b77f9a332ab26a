package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	tcases := []struct {
		name           string
		serverAddr     string
		databaseDSN    string
		allowedOrigins []string
		expectErr      string
	}{
		{
			name:           "valid config",
			serverAddr:     "localhost:8000",
			databaseDSN:    "host=localhost user=postgres",
			allowedOrigins: []string{"http://localhost:3000"},
		},
		{
			name:        "empty server address",
			databaseDSN: "host=localhost user=postgres",
			expectErr:   "server address cannot be empty",
		},
		{
			name:       "empty database DSN",
			serverAddr: "localhost:8000",
			expectErr:  "database DSN cannot be empty",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.serverAddr, tc.databaseDSN, tc.allowedOrigins)
			if tc.expectErr != "" {
				assert.EqualError(t, err, tc.expectErr)
				assert.Nil(t, cfg)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.serverAddr, cfg.ServerAddr)
			assert.Equal(t, tc.databaseDSN, cfg.DatabaseDSN)
			assert.Equal(t, tc.allowedOrigins, cfg.AllowedOrigins)
		})
	}
}
