package triage

import (
	"errors"
	"testing"
)

func TestNormalize_FullPayload(t *testing.T) {
	t.Parallel()

	raw := `{
		"urgency": "High",
		"department": "Cardiology",
		"explanation": "Chest pain with shortness of breath warrants urgent evaluation.",
		"medical_attention": "Call emergency services now.",
		"disclaimer": "Custom disclaimer text."
	}`

	a, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if a.Urgency != "High" {
		t.Errorf("Urgency = %q", a.Urgency)
	}
	if a.Department != "Cardiology" {
		t.Errorf("Department = %q", a.Department)
	}
	if a.MedicalAttention != "Call emergency services now." {
		t.Errorf("MedicalAttention = %q", a.MedicalAttention)
	}
	if a.Disclaimer != "Custom disclaimer text." {
		t.Errorf("Disclaimer = %q, want the model's own text preserved", a.Disclaimer)
	}
}

func TestNormalize_OptionalDefaults(t *testing.T) {
	t.Parallel()

	a, err := Normalize(`{"urgency":"Low","department":"General Medicine","explanation":"Mild symptoms."}`)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if a.MedicalAttention != "" {
		t.Errorf("MedicalAttention = %q, want empty default", a.MedicalAttention)
	}
	if a.Disclaimer != CanonicalDisclaimer {
		t.Errorf("Disclaimer = %q, want canonical default", a.Disclaimer)
	}
}

func TestNormalize_EmptyOptionalGetsDefault(t *testing.T) {
	t.Parallel()

	// An explicitly empty disclaimer is treated the same as an absent one.
	a, err := Normalize(`{"urgency":"Low","department":"ENT","explanation":"ok","disclaimer":""}`)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if a.Disclaimer != CanonicalDisclaimer {
		t.Errorf("Disclaimer = %q, want canonical default", a.Disclaimer)
	}
}

func TestNormalize_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		wantReason string
	}{
		{"prose not json", "I am sorry, I cannot help with that.", ReasonSyntax},
		{"truncated json", `{"urgency":"High","department":"Car`, ReasonSyntax},
		{"empty string", "", ReasonSyntax},
		{"missing urgency", `{"department":"ENT","explanation":"ok"}`, ReasonShape},
		{"missing department", `{"urgency":"Low","explanation":"ok"}`, ReasonShape},
		{"missing explanation", `{"urgency":"Low","department":"ENT"}`, ReasonShape},
		{"numeric urgency", `{"urgency":3,"department":"ENT","explanation":"ok"}`, ReasonShape},
		{"null department", `{"urgency":"Low","department":null,"explanation":"ok"}`, ReasonShape},
		{"array payload", `["urgency","High"]`, ReasonSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Normalize(tt.raw)
			if a != nil {
				t.Fatalf("Normalize returned assessment %+v, want nil", a)
			}
			if !errors.Is(err, ErrInvalidAssessment) {
				t.Fatalf("error %v does not match ErrInvalidAssessment", err)
			}
			var invalid *InvalidAssessmentError
			if !errors.As(err, &invalid) {
				t.Fatalf("error %v is not an *InvalidAssessmentError", err)
			}
			if invalid.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", invalid.Reason, tt.wantReason)
			}
		})
	}
}

func TestNormalize_OffEnumUrgencyPassesThrough(t *testing.T) {
	t.Parallel()

	a, err := Normalize(`{"urgency":"Critical","department":"ER","explanation":"x"}`)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if a.Urgency != "Critical" {
		t.Errorf("Urgency = %q, want verbatim pass-through", a.Urgency)
	}
	if KnownUrgency(a.Urgency) {
		t.Errorf("KnownUrgency(%q) = true, want false", a.Urgency)
	}
}

func TestNewInvalidAssessment(t *testing.T) {
	t.Parallel()

	cause := errors.New("no choices in completion")
	err := NewInvalidAssessment(ReasonEnvelope, cause)

	if !errors.Is(err, ErrInvalidAssessment) {
		t.Error("does not match ErrInvalidAssessment")
	}
	if !errors.Is(err, cause) {
		t.Error("does not unwrap to the cause")
	}
	if err.Reason != ReasonEnvelope {
		t.Errorf("Reason = %q", err.Reason)
	}
}
