package overpass

import (
	"regexp"
	"strings"
	"testing"

	"github.com/funmap-service/internal/config"
	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_Build(t *testing.T) {
	t.Run("end to end example", func(t *testing.T) {
		query, err := NewQueryBuilder().
			Regions(1633325, 2534201).
			Rules(domain.FilterRule{
				Key:    "tourism",
				Kind:   domain.MatchExact,
				Values: []string{"zoo"},
			}).
			Timeout(180).
			Build()
		require.NoError(t, err)

		assert.Contains(t, query, "[out:json][timeout:180];")
		assert.Contains(t, query, "rel(id:1633325,2534201);")
		assert.Contains(t, query, "map_to_area->.searchArea;")
		assert.Contains(t, query, `nwr["tourism"="zoo"](area.searchArea);`)
		assert.Contains(t, query, "out center;")

		// one merged area, one filter clause
		assert.Equal(t, 1, strings.Count(query, "map_to_area"))
		assert.Equal(t, 1, strings.Count(query, "nwr["))
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		build := func() string {
			q, err := NewQueryBuilder().
				Regions(1633325, 2534201).
				Rules(
					domain.FilterRule{Key: "tourism", Kind: domain.MatchExact, Values: []string{"zoo"}},
					domain.FilterRule{Key: "leisure", Kind: domain.MatchAnyOf, Values: []string{"water_park", "ice_rink"}},
				).
				Timeout(180).
				Build()
			require.NoError(t, err)
			return q
		}

		assert.Equal(t, build(), build())
	})

	t.Run("area clause references exactly the given regions", func(t *testing.T) {
		query, err := NewQueryBuilder().
			Regions(42, 7, 1633325).
			Rules(domain.FilterRule{Key: "tourism", Kind: domain.MatchExact, Values: []string{"zoo"}}).
			Build()
		require.NoError(t, err)

		assert.Contains(t, query, "rel(id:42,7,1633325);")
	})

	t.Run("exact match is not a substring match", func(t *testing.T) {
		query, err := NewQueryBuilder().
			Regions(1).
			Rules(domain.FilterRule{Key: "tourism", Kind: domain.MatchExact, Values: []string{"zoo"}}).
			Build()
		require.NoError(t, err)

		assert.Contains(t, query, `["tourism"="zoo"]`)
		assert.NotContains(t, query, `"tourism"~`)
	})

	t.Run("alternation is anchored on both sides", func(t *testing.T) {
		query, err := NewQueryBuilder().
			Regions(1).
			Rules(domain.FilterRule{
				Key:    "attraction",
				Kind:   domain.MatchAnyOf,
				Values: []string{"train", "carousel"},
			}).
			Build()
		require.NoError(t, err)

		assert.Contains(t, query, `["attraction"~"^(train|carousel)$"]`)

		re := regexp.MustCompile(extractPattern(t, query, "attraction"))
		assert.True(t, re.MatchString("train"))
		assert.True(t, re.MatchString("carousel"))
		assert.False(t, re.MatchString("trains"))
		assert.False(t, re.MatchString("toy_train"))
	})

	t.Run("prefix rule leaves the tail open", func(t *testing.T) {
		query, err := NewQueryBuilder().
			Regions(1).
			Rules(domain.FilterRule{
				Key:    "sport",
				Kind:   domain.MatchPrefix,
				Values: []string{"climbing", "karting"},
			}).
			Build()
		require.NoError(t, err)

		assert.Contains(t, query, `["sport"~"^(climbing|karting)"]`)

		re := regexp.MustCompile(extractPattern(t, query, "sport"))
		assert.True(t, re.MatchString("climbing"))
		assert.True(t, re.MatchString("climbing_adventure"))
		assert.False(t, re.MatchString("ice_climbing"))
	})

	t.Run("rules keep their order", func(t *testing.T) {
		query, err := NewQueryBuilder().
			Regions(1).
			Rules(
				domain.FilterRule{Key: "tourism", Kind: domain.MatchExact, Values: []string{"zoo"}},
				domain.FilterRule{Key: "leisure", Kind: domain.MatchAnyOf, Values: []string{"water_park"}},
			).
			Build()
		require.NoError(t, err)

		assert.Less(t,
			strings.Index(query, `"tourism"`),
			strings.Index(query, `"leisure"`))
	})

	t.Run("empty region list rejected", func(t *testing.T) {
		_, err := NewQueryBuilder().
			Rules(domain.FilterRule{Key: "tourism", Kind: domain.MatchExact, Values: []string{"zoo"}}).
			Build()

		assertInvalidConfiguration(t, err)
	})

	t.Run("non-positive region id rejected", func(t *testing.T) {
		_, err := NewQueryBuilder().
			Regions(1633325, -5).
			Rules(domain.FilterRule{Key: "tourism", Kind: domain.MatchExact, Values: []string{"zoo"}}).
			Build()

		assertInvalidConfiguration(t, err)
	})

	t.Run("empty rule list rejected", func(t *testing.T) {
		_, err := NewQueryBuilder().Regions(1633325).Build()

		assertInvalidConfiguration(t, err)
	})

	t.Run("rule without values rejected", func(t *testing.T) {
		_, err := NewQueryBuilder().
			Regions(1633325).
			Rules(domain.FilterRule{Key: "tourism", Kind: domain.MatchExact}).
			Build()

		assertInvalidConfiguration(t, err)
	})

	t.Run("regex metacharacters in value rejected", func(t *testing.T) {
		_, err := NewQueryBuilder().
			Regions(1633325).
			Rules(domain.FilterRule{
				Key:    "leisure",
				Kind:   domain.MatchAnyOf,
				Values: []string{"water_park", ".*"},
			}).
			Build()

		assertInvalidConfiguration(t, err)
	})

	t.Run("unknown match kind rejected", func(t *testing.T) {
		_, err := NewQueryBuilder().
			Regions(1633325).
			Rules(domain.FilterRule{Key: "tourism", Kind: "fuzzy", Values: []string{"zoo"}}).
			Build()

		assertInvalidConfiguration(t, err)
	})
}

func TestRulesFromConfig(t *testing.T) {
	cfg := &config.QueryConfig{
		TourismValue:       "zoo",
		LeisureValues:      []string{"water_park", "ice_rink"},
		AttractionValues:   []string{"carousel"},
		SportValuePrefixes: []string{"climbing"},
	}

	rules := RulesFromConfig(cfg)
	require.Len(t, rules, 4)

	assert.Equal(t, domain.MatchExact, rules[0].Kind)
	assert.Equal(t, "tourism", rules[0].Key)
	assert.Equal(t, domain.MatchAnyOf, rules[1].Kind)
	assert.Equal(t, domain.MatchAnyOf, rules[2].Kind)
	assert.Equal(t, domain.MatchPrefix, rules[3].Kind)
	assert.Equal(t, "sport", rules[3].Key)
}

// extractPattern вытаскивает regex из клаузы вида ["key"~"..."]
func extractPattern(t *testing.T, query, key string) string {
	t.Helper()

	marker := `"` + key + `"~"`
	start := strings.Index(query, marker)
	require.GreaterOrEqual(t, start, 0, "no pattern clause for key %s", key)
	start += len(marker)
	end := strings.Index(query[start:], `"`)
	require.GreaterOrEqual(t, end, 0)
	return query[start : start+end]
}

func assertInvalidConfiguration(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	assert.Equal(t, "INVALID_CONFIGURATION", appErr.Code)
}
