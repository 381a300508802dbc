// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/google/uuid"
)

// roleNamespace seeds deterministic role IDs when the upstream record carries none.
var roleNamespace = uuid.MustParse("6f1c9a52-3d0e-4b8e-9a51-2f7d8c0e4b19")

// StitchedCV is the deduplicated, ordered role history produced upstream.
// Roles are ordered most recent first; position drives recency scoring.
type StitchedCV struct {
	Roles []StitchedRole `json:"roles"`
}

// StitchedRole is one role with its finalized achievement bullets
type StitchedRole struct {
	ID       string   `json:"id,omitempty"`
	Company  string   `json:"company"`
	Title    string   `json:"title"`
	Period   string   `json:"period"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets"`
	Skills   []string `json:"skills,omitempty"`
}

// PoolBullet is a bullet tagged with the role it came from
type PoolBullet struct {
	Text      string `json:"text"`
	RoleID    string `json:"role_id"`
	RoleTitle string `json:"role_title"`
	Company   string `json:"company"`
	// RoleIndex is the role position in the CV (0 = current role)
	RoleIndex int `json:"role_index"`
}

// RoleKey returns the role ID, deriving a stable one from company, title and period when absent.
func (r *StitchedRole) RoleKey() string {
	if r.ID != "" {
		return r.ID
	}
	seed := strings.Join([]string{r.Company, r.Title, r.Period}, "|")
	return uuid.NewSHA1(roleNamespace, []byte(seed)).String()
}

// Bullets flattens the CV into its bullet pool, preserving role order and bullet order.
// Blank bullets are skipped.
func (cv *StitchedCV) Bullets() []PoolBullet {
	if cv == nil {
		return nil
	}
	pool := make([]PoolBullet, 0)
	for i := range cv.Roles {
		role := &cv.Roles[i]
		roleID := role.RoleKey()
		for _, text := range role.Bullets {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			pool = append(pool, PoolBullet{
				Text:      text,
				RoleID:    roleID,
				RoleTitle: role.Title,
				Company:   role.Company,
				RoleIndex: i,
			})
		}
	}
	return pool
}

// BulletTexts returns the text of every bullet in the pool
func (cv *StitchedCV) BulletTexts() []string {
	pool := cv.Bullets()
	texts := make([]string, len(pool))
	for i, b := range pool {
		texts[i] = b.Text
	}
	return texts
}

// Periods returns the period string of every role in order
func (cv *StitchedCV) Periods() []string {
	if cv == nil {
		return nil
	}
	periods := make([]string, 0, len(cv.Roles))
	for _, role := range cv.Roles {
		periods = append(periods, role.Period)
	}
	return periods
}
