package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"recommender": map[string]any{
			"apiKey":              "",
			"baseUrl":             "",
			"consecutiveFailures": 5,
		},
		"autoOrder": map[string]any{
			"rateLimit":     1,
			"maxCandidates": 20,
		},
		"database": map[string]any{
			"slowQueryThreshold": "200ms",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "RECOMMENDER_APIKEY", want: "recommender.apiKey"},
		{envKey: "RECOMMENDER_BASEURL", want: "recommender.baseUrl"},
		{envKey: "RECOMMENDER_CONSECUTIVEFAILURES", want: "recommender.consecutiveFailures"},
		{envKey: "AUTOORDER_RATELIMIT", want: "autoOrder.rateLimit"},
		{envKey: "DATABASE_SLOWQUERYTHRESHOLD", want: "database.slowQueryThreshold"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
		{envKey: "RECOMMENDER__MODEL", want: "recommender.model"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "maxcandidates", normalizeToken("max-Candidates"))
	assert.Equal(t, "qrcode", normalizeToken("QR_Code"))
	assert.Empty(t, normalizeToken("__"))
}
