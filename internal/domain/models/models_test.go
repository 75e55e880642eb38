package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBarn(t *testing.T) {
	barn, err := ParseBarn("barat")
	require.NoError(t, err)
	assert.Equal(t, BarnWest, barn)

	barn, err = ParseBarn("timur")
	require.NoError(t, err)
	assert.Equal(t, BarnEast, barn)

	_, err = ParseBarn("selatan")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	assert.True(t, ParseRole("admin").IsAdmin())

	west := ParseRole("barat")
	barn, ok := west.HandlerBarn()
	require.True(t, ok)
	assert.Equal(t, BarnWest, barn)

	// Unknown roles stay invalid rather than erroring, so they fail closed.
	unknown := ParseRole("supervisor")
	assert.False(t, unknown.Valid())
	assert.False(t, unknown.IsAdmin())
	_, ok = unknown.HandlerBarn()
	assert.False(t, ok)
}

func TestRoleJSONRoundTrip(t *testing.T) {
	for _, wire := range []string{"admin", "barat", "timur"} {
		data, err := json.Marshal(ParseRole(wire))
		require.NoError(t, err)
		assert.JSONEq(t, `"`+wire+`"`, string(data))

		var role Role
		require.NoError(t, json.Unmarshal(data, &role))
		assert.Equal(t, ParseRole(wire), role)
	}

	var role Role
	require.NoError(t, json.Unmarshal([]byte(`"manager"`), &role))
	assert.False(t, role.Valid())

	_, err := json.Marshal(role)
	assert.Error(t, err)
}

func TestActorJSON(t *testing.T) {
	data := []byte(`{"id":"u7","username":"siti","role":"timur"}`)

	var actor Actor
	require.NoError(t, json.Unmarshal(data, &actor))
	assert.Equal(t, "siti", actor.Username)

	barn, ok := actor.Role.HandlerBarn()
	require.True(t, ok)
	assert.Equal(t, BarnEast, barn)
}

func TestFeedingLogDay(t *testing.T) {
	log := FeedingLog{Date: "2025-02-28"}
	day, err := log.Day()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), day)

	_, err = FeedingLog{Date: "28/02/2025"}.Day()
	assert.Error(t, err)
}
