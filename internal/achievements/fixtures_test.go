package achievements

import (
	"github.com/jonathan/cv-tailor/internal/types"
)

func sampleCV() *types.StitchedCV {
	return &types.StitchedCV{Roles: []types.StitchedRole{
		{ID: "r1", Company: "Acme", Title: "VP Engineering", Period: "2020 - Present", Bullets: []string{
			"Scaled engineering organization from 40 to 120 engineers across 12 teams",
			"Reduced cloud infrastructure spend by 35% through platform consolidation",
			"Led migration of the payments platform to Kubernetes with zero downtime",
		}},
		{ID: "r2", Company: "Globex", Title: "Director of Engineering", Period: "2016 - 2020", Bullets: []string{
			"Improved deployment frequency from weekly to 30 times per day with CI/CD",
			"Mentored eight engineering managers and built a hiring process",
			"Cut incident response time by 60% by introducing on-call rotations",
		}},
		{ID: "r3", Company: "Initech", Title: "Engineering Manager", Period: "2012 - 2016", Bullets: []string{
			"Designed a distributed caching layer serving 2M requests per minute",
			"Wrote internal documentation for onboarding",
		}},
	}}
}

func samplePool() []types.PoolBullet {
	return FlattenPool(sampleCV())
}

func bulletByText(t string) types.PoolBullet {
	for _, b := range samplePool() {
		if b.Text == t {
			return b
		}
	}
	panic("no bullet " + t)
}
