// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCV() *StitchedCV {
	return &StitchedCV{
		Roles: []StitchedRole{
			{
				ID:      "role_current",
				Company: "Acme",
				Title:   "Director of Engineering",
				Period:  "2020-Present",
				Bullets: []string{"Scaled platform to 40M requests/day", "  ", "Hired 12 engineers"},
			},
			{
				Company: "Globex",
				Title:   "Engineering Manager",
				Period:  "2015-2018",
				Bullets: []string{"Cut deploy time by 60%"},
			},
		},
	}
}

func TestStitchedCV_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"roles": [
			{
				"company": "Acme",
				"title": "CTO",
				"period": "2019-Present",
				"bullets": ["Built the platform team"],
				"skills": ["Go"]
			}
		]
	}`

	var cv StitchedCV
	err := json.Unmarshal([]byte(jsonInput), &cv)
	require.NoError(t, err)
	require.Len(t, cv.Roles, 1)
	assert.Equal(t, "Acme", cv.Roles[0].Company)
	assert.Equal(t, []string{"Built the platform team"}, cv.Roles[0].Bullets)
	assert.Equal(t, []string{"Go"}, cv.Roles[0].Skills)
}

func TestStitchedCV_Bullets(t *testing.T) {
	pool := sampleCV().Bullets()

	require.Len(t, pool, 3)
	assert.Equal(t, "Scaled platform to 40M requests/day", pool[0].Text)
	assert.Equal(t, "role_current", pool[0].RoleID)
	assert.Equal(t, 0, pool[0].RoleIndex)
	assert.Equal(t, "Hired 12 engineers", pool[1].Text)
	assert.Equal(t, "Cut deploy time by 60%", pool[2].Text)
	assert.Equal(t, 1, pool[2].RoleIndex)
	assert.Equal(t, "Globex", pool[2].Company)
	assert.NotEmpty(t, pool[2].RoleID)
}

func TestStitchedCV_BulletsNil(t *testing.T) {
	var cv *StitchedCV
	assert.Empty(t, cv.Bullets())
	assert.Empty(t, cv.BulletTexts())
	assert.Nil(t, cv.Periods())
}

func TestStitchedRole_RoleKeyIsStable(t *testing.T) {
	role := StitchedRole{Company: "Globex", Title: "Engineering Manager", Period: "2015-2018"}
	other := StitchedRole{Company: "Globex", Title: "Engineering Manager", Period: "2015-2019"}

	assert.Equal(t, role.RoleKey(), role.RoleKey())
	assert.NotEqual(t, role.RoleKey(), other.RoleKey())

	role.ID = "explicit"
	assert.Equal(t, "explicit", role.RoleKey())
}

func TestStitchedCV_Periods(t *testing.T) {
	assert.Equal(t, []string{"2020-Present", "2015-2018"}, sampleCV().Periods())
}
