package template

import (
	"reflect"
	"testing"
)

func TestRenderKnownVars(t *testing.T) {
	body := "Alert: {{incident.alert}}\nSeverity: {{triage.severity}}"
	got := Render(body, Vars{
		VarAlert:          "CheckoutService error rate above threshold",
		VarTriageSeverity: "P1",
	})

	want := "Alert: CheckoutService error rate above threshold\nSeverity: P1"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderMissingVarsBecomeEmpty(t *testing.T) {
	got := Render("[{{incident.logs}}]", nil)
	if got != "[]" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderExtraVars(t *testing.T) {
	got := Render("{{team}} / {{unknown}}", Vars{"team": "payments"})
	if got != "payments / {{unknown}}" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderDoesNotExpandValues(t *testing.T) {
	got := Render("{{incident.alert}}", Vars{VarAlert: "{{incident.logs}}", VarLogs: "leak"})
	if got != "{{incident.logs}}" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{incident.alert}} {{triage.severity}} {{ spaced }} {{incident.alert}}")
	want := []string{"incident.alert", "triage.severity"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders() = %v, want %v", got, want)
	}
}
