package compare

import (
	"testing"

	"github.com/harrison/fileset-compare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	entries := []models.DirectoryEntry{
		models.NewDirectoryEntry("kubernetes", []string{"auth_service", "api-gateway"}),
		models.NewDirectoryEntry("nomad", []string{"api-gateway"}),
	}

	m, err := Build(entries, models.RuleList{{Match: "_", Replace: "-"}})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"api-gateway", "auth-service"}, m.Keys())
	assert.Equal(t, []string{"kubernetes", "nomad"}, m.Owners("api-gateway"))
	assert.Equal(t, []string{"kubernetes"}, m.Owners("auth-service"))
	assert.Nil(t, m.Owners("missing"))
	assert.True(t, m.Contains("auth-service", "kubernetes"))
	assert.False(t, m.Contains("auth-service", "nomad"))
	assert.Equal(t, 2, m.CountFor("kubernetes"))
	assert.Equal(t, 1, m.CountFor("nomad"))
}

func TestBuildCollisionWithinDirectory(t *testing.T) {
	entries := []models.DirectoryEntry{
		models.NewDirectoryEntry("k8s", []string{"web_app", "web-app", "db"}),
		models.NewDirectoryEntry("nomad", []string{"web-app"}),
	}

	m, err := Build(entries, models.RuleList{{Match: "_", Replace: "-"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"k8s", "nomad"}, m.Owners("web-app"))
	assert.Equal(t, []string{"web-app", "web_app"}, m.Origins("web-app", "k8s"))
	assert.Equal(t, 2, m.CountFor("k8s"))

	assert.Equal(t, []models.Collision{
		{Label: "k8s", Key: "web-app", Names: []string{"web-app", "web_app"}},
	}, m.Collisions())
}

func TestBuildKeySetIsUnionOfNormalizedNames(t *testing.T) {
	entries := []models.DirectoryEntry{
		models.NewDirectoryEntry("a", []string{"x-prod", "y"}),
		models.NewDirectoryEntry("b", []string{"x", "z-prod"}),
		models.NewDirectoryEntry("c", nil),
	}

	m, err := Build(entries, models.RuleList{{Match: "-prod", Replace: ""}})
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, m.Keys())
	for _, key := range m.Keys() {
		assert.NotEmpty(t, m.Owners(key), "key %q must have an owner", key)
	}
	assert.Equal(t, 0, m.CountFor("c"))
}

func TestBuildRejectsDuplicateLabels(t *testing.T) {
	entries := []models.DirectoryEntry{
		models.NewDirectoryEntry("a", []string{"x"}),
		models.NewDirectoryEntry("a", []string{"y"}),
	}

	_, err := Build(entries, nil)

	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "a", cfgErr.Value)
}

func TestBuildRejectsEmptyMatch(t *testing.T) {
	_, err := Build(nil, models.RuleList{{Match: ""}})

	var cfgErr *models.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
