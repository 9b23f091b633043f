package refusal

import "testing"

func TestGateRefusesAdviceSeekingQuestions(t *testing.T) {
	gate := NewGate()

	tests := []struct {
		name       string
		question   string
		wantReason Reason
	}{
		{
			name:       "lawfulness ruling",
			question:   "Is it lawful for us to process this data without consent?",
			wantReason: ReasonLawfulnessRuling,
		},
		{
			name:       "lawfulness ruling uppercase",
			question:   "IS IT LEGAL to share the records?",
			wantReason: ReasonLawfulnessRuling,
		},
		{
			name:       "compliance decision",
			question:   "Are we compliant if we keep the data for ten years?",
			wantReason: ReasonComplianceDecision,
		},
		{
			name:       "obligation decision",
			question:   "Do we need to appoint a data protection officer?",
			wantReason: ReasonComplianceDecision,
		},
		{
			name:       "action recommendation",
			question:   "What should we do about the old backups?",
			wantReason: ReasonActionRecommendation,
		},
		{
			name:       "direct recommendation request",
			question:   "Can you recommend a retention period for us?",
			wantReason: ReasonActionRecommendation,
		},
		{
			name:       "permission request",
			question:   "Are we allowed to record calls?",
			wantReason: ReasonPermissionRequest,
		},
		{
			name:       "legality permission",
			question:   "Can we legally transfer the data overseas?",
			wantReason: ReasonPermissionRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, refused := gate.Evaluate(tt.question)
			if !refused {
				t.Fatalf("Evaluate(%q) should refuse", tt.question)
			}
			if reason != tt.wantReason {
				t.Fatalf("Evaluate(%q) reason = %s, want %s", tt.question, reason, tt.wantReason)
			}
			if !gate.ShouldRefuse(tt.question) {
				t.Fatalf("ShouldRefuse(%q) = false, want true", tt.question)
			}
		})
	}
}

func TestGateAcceptsGuidanceQuestions(t *testing.T) {
	gate := NewGate()

	questions := []string{
		"How is a lawful basis documented?",
		"Which conditions apply to consent?",
		"What does the guidance say about retention periods?",
		"When does a breach have to be reported?",
		"",
	}

	for _, question := range questions {
		reason, refused := gate.Evaluate(question)
		if refused {
			t.Fatalf("Evaluate(%q) refused with reason %s, want accept", question, reason)
		}
	}
}

func TestGateIsDeterministic(t *testing.T) {
	gate := NewGate()
	question := "Should we delete the records now?"

	first, _ := gate.Evaluate(question)
	for i := 0; i < 10; i++ {
		reason, refused := gate.Evaluate(question)
		if !refused || reason != first {
			t.Fatal("repeated evaluation must not drift")
		}
	}
}
