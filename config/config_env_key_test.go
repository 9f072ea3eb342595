package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"database": map[string]any{
			"sslMode": "disable",
			"dbName":  "biblio",
		},
		"loan": map[string]any{
			"penaltyPerDay": 0.5,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DATABASE_SSLMODE", want: "database.sslMode"},
		{envKey: "DATABASE_DBNAME", want: "database.dbName"},
		{envKey: "LOAN_PENALTYPERDAY", want: "loan.penaltyPerDay"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
