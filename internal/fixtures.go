package internal

import "time"

// Fixture records stand in for live data whenever the API is unreachable.
// Timestamps are computed relative to now so the records always land inside
// the requested window.

func fixtureMeetings(now time.Time) []InsightRecord {
	return []InsightRecord{
		{
			Type:        InsightMeeting,
			Title:       "Weekly Team Sync",
			Description: "Recurring sync with the platform team. Agenda: sprint review, blockers, next milestones.",
			Timestamp:   now.Add(-2 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "organizer": "Dana Reeve", "durationMinutes": 30},
		},
		{
			Type:        InsightMeeting,
			Title:       "Q3 Planning Review",
			Description: "Review of quarterly objectives with leadership. Budget and headcount discussion.",
			Timestamp:   now.Add(-5 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "organizer": "Marcus Webb", "durationMinutes": 60},
		},
		{
			Type:        InsightMeeting,
			Title:       "Customer Escalation: Contoso",
			Description: "Follow-up on the Contoso deployment issue reported last week.",
			Timestamp:   now.Add(-26 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "organizer": "Priya Nair", "durationMinutes": 45},
		},
		{
			Type:        InsightMeeting,
			Title:       "1:1 with Manager",
			Description: "Biweekly one-on-one. Career development and project staffing.",
			Timestamp:   now.Add(-50 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "organizer": "Jordan Blake", "durationMinutes": 30},
		},
		{
			Type:        InsightMeeting,
			Title:       "Architecture Guild",
			Description: "Monthly architecture guild: service mesh migration proposal.",
			Timestamp:   now.Add(-96 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "organizer": "Sam Okafor", "durationMinutes": 60},
		},
	}
}

func fixtureEmails(now time.Time) []InsightRecord {
	return []InsightRecord{
		{
			Type:        InsightEmail,
			Title:       "RE: Deployment window for Friday",
			Description: "Confirming the change freeze lifts at 18:00 UTC. Rollback plan attached.",
			Timestamp:   now.Add(-90 * time.Minute),
			SourceData:  map[string]interface{}{"simulated": true, "from": "ops@fabrikam.example", "hasAttachments": true},
		},
		{
			Type:        InsightEmail,
			Title:       "Action required: expense report overdue",
			Description: "Your September expense report is awaiting submission.",
			Timestamp:   now.Add(-4 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "from": "finance@fabrikam.example", "hasAttachments": false},
		},
		{
			Type:        InsightEmail,
			Title:       "Design doc ready for review",
			Description: "The ingestion pipeline redesign doc is ready. Comments welcome by Thursday.",
			Timestamp:   now.Add(-9 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "from": "lee.cheng@fabrikam.example", "hasAttachments": false},
		},
		{
			Type:        InsightEmail,
			Title:       "Security training reminder",
			Description: "Annual security awareness training closes at the end of the month.",
			Timestamp:   now.Add(-30 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "from": "training@fabrikam.example", "hasAttachments": false},
		},
		{
			Type:        InsightEmail,
			Title:       "FW: Contoso contract renewal",
			Description: "Forwarding the renewal terms for your sign-off.",
			Timestamp:   now.Add(-72 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "from": "alex.ruiz@fabrikam.example", "hasAttachments": true},
		},
	}
}

func fixtureDocuments(now time.Time) []InsightRecord {
	return []InsightRecord{
		{
			Type:        InsightDocument,
			Title:       "Ingestion Pipeline Redesign.docx",
			Description: "Last modified by Lee Cheng. Shared with the platform team.",
			Timestamp:   now.Add(-3 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "webUrl": "https://fabrikam.example/docs/ingestion-redesign"},
		},
		{
			Type:        InsightDocument,
			Title:       "Q3 OKR Tracker.xlsx",
			Description: "Updated after the planning review. 12 objectives tracked.",
			Timestamp:   now.Add(-20 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "webUrl": "https://fabrikam.example/docs/q3-okr"},
		},
		{
			Type:        InsightDocument,
			Title:       "Contoso Deployment Runbook.md",
			Description: "Runbook revised with the new rollback steps.",
			Timestamp:   now.Add(-44 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "webUrl": "https://fabrikam.example/docs/contoso-runbook"},
		},
		{
			Type:        InsightDocument,
			Title:       "Service Mesh Proposal.pptx",
			Description: "Slides for the architecture guild session.",
			Timestamp:   now.Add(-120 * time.Hour),
			SourceData:  map[string]interface{}{"simulated": true, "webUrl": "https://fabrikam.example/docs/service-mesh"},
		},
	}
}
