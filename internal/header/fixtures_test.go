package header

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/llm/llmtest"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	mockTagline         = "Backend engineer who migrates legacy services to Kubernetes and builds event pipelines that stay fast under heavy production load"
	mockSynthesized     = "Backend engineer who builds resilient event pipelines, tunes PostgreSQL for low latency and moves legacy services onto Kubernetes safely"
	pipelineBullet      = "Built Go ingestion pipeline on Kafka handling 2M events/day"
	migrationBullet     = "Led migration of 40 Python services to Kubernetes on AWS"
	postgresBullet      = "Tuned PostgreSQL queries cutting p99 latency by 60%"
	inventedAchievement = "Tripled revenue across every product line"
)

func testCV() *types.StitchedCV {
	return &types.StitchedCV{Roles: []types.StitchedRole{
		{ID: "r1", Company: "Acme", Title: "Senior Engineer", Period: "2019 - Present", Bullets: []string{
			migrationBullet,
			pipelineBullet,
		}},
		{ID: "r2", Company: "Globex", Title: "Software Engineer", Period: "2014 - 2019", Bullets: []string{
			postgresBullet,
		}},
	}}
}

func testWhitelist() *types.SkillWhitelist {
	return &types.SkillWhitelist{
		HardSkills: []string{
			"Go", "Python", "Java", "TypeScript", "SQL", "AWS", "GCP", "Kubernetes", "Docker",
			"Terraform", "PostgreSQL", "Redis", "Kafka", "Distributed Systems", "System Design",
		},
		SoftSkills: []string{"Hiring", "Mentoring", "Coaching", "Roadmapping", "Technical Strategy"},
	}
}

func testJob(category string) *types.JobDescription {
	return &types.JobDescription{
		JobID:        "job-42",
		Title:        "Senior Backend Engineer",
		Company:      "Payfast",
		RoleCategory: category,
		Keywords:     []string{"Go", "Kubernetes", "Kafka", "Snowflake"},
		PainPoints:   []string{"event pipeline latency"},
	}
}

func testCandidate() types.CandidateMetadata {
	return types.CandidateMetadata{
		Name:           "Jordan Lee",
		Email:          "jordan@example.com",
		Location:       "Berlin",
		Education:      []types.Education{{Degree: "BSc", Field: "Computer Science", Institution: "TU Berlin", Year: "2008"}},
		Certifications: []string{"CKA"},
		Languages:      []string{"English", "German"},
	}
}

func testRequest(category string) Request {
	return Request{
		CV:        testCV(),
		Job:       testJob(category),
		Candidate: testCandidate(),
		Whitelist: testWhitelist(),
	}
}

func score(v float64) *float64 {
	return &v
}

// scriptedClient answers every structured call of a full ensemble run
func scriptedClient() *llmtest.MockLLMClient {
	return &llmtest.MockLLMClient{
		InvokeFunc: func(_ context.Context, req llm.Request) (string, error) {
			switch req.Schema.Name {
			case "key_achievement_selection":
				return `{"selections": [{"index": 0, "text": ""}, {"index": 1, "text": ""}]}`, nil
			case "value_proposition":
				return `{"tagline": "` + mockTagline + `", "answers_who": true, "answers_what_problems": true, "answers_proof": true, "answers_why_you": false}`, nil
			case "synthesized_profile":
				return `{"tagline": "` + mockSynthesized + `", "key_achievements": ["` +
					pipelineBullet + `", "` + inventedAchievement + `"]}`, nil
			}
			return "", &llm.InvokeError{Kind: llm.KindTransport, Message: "unexpected call"}
		},
	}
}

func newTestAssembler(client llm.Client) *Assembler {
	opts := DefaultOptions()
	opts.Ensemble.TargetCount = 3
	return NewAssembler(client, opts, zerolog.Nop())
}
