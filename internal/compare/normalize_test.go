package compare

import (
	"testing"

	"github.com/harrison/fileset-compare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rules models.RuleList
		want  string
	}{
		{name: "no rules", input: "auth_service", want: "auth_service"},
		{name: "single rule", input: "auth_service", rules: models.RuleList{{Match: "_", Replace: "-"}}, want: "auth-service"},
		{name: "replaces every occurrence", input: "a_b_c_d", rules: models.RuleList{{Match: "_", Replace: ""}}, want: "abcd"},
		{name: "non-overlapping matches", input: "aaaa", rules: models.RuleList{{Match: "aa", Replace: "b"}}, want: "bb"},
		{name: "unmatched rule is a no-op", input: "gateway", rules: models.RuleList{{Match: "-prod", Replace: ""}}, want: "gateway"},
		{
			name:  "chained transforms",
			input: "api.deployment-staging",
			rules: models.RuleList{{Match: ".deployment", Replace: ""}, {Match: "-staging", Replace: ""}},
			want:  "api",
		},
		{name: "no case folding", input: "API_Gateway", rules: models.RuleList{{Match: "_", Replace: "-"}}, want: "API-Gateway"},
		{name: "collapse to empty", input: "-prod", rules: models.RuleList{{Match: "-prod", Replace: ""}}, want: ""},
		{name: "no trimming", input: " spaced ", want: " spaced "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeOrderSensitivity(t *testing.T) {
	forward, err := Normalize("a", models.RuleList{{Match: "a", Replace: "b"}, {Match: "b", Replace: "c"}})
	require.NoError(t, err)
	assert.Equal(t, "c", forward)

	reversed, err := Normalize("a", models.RuleList{{Match: "b", Replace: "c"}, {Match: "a", Replace: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "b", reversed)
}

func TestNormalizeIsPure(t *testing.T) {
	n, err := NewNormalizer(models.RuleList{{Match: "_", Replace: "-"}, {Match: "-v2", Replace: ""}})
	require.NoError(t, err)

	first := n.Normalize("svc_v2")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, n.Normalize("svc_v2"))
	}
	assert.Equal(t, "svc", first)
}

func TestNewNormalizerRejectsEmptyMatch(t *testing.T) {
	_, err := NewNormalizer(models.RuleList{{Match: "_", Replace: "-"}, {Match: "", Replace: "x"}})

	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "rule 2")
}

func TestNormalizerCopiesRules(t *testing.T) {
	rules := models.RuleList{{Match: "_", Replace: "-"}}
	n, err := NewNormalizer(rules)
	require.NoError(t, err)

	rules[0].Replace = "+"
	assert.Equal(t, "a-b", n.Normalize("a_b"), "later edits to the caller's slice must not leak in")
}
