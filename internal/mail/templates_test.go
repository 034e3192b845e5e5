package mail

import (
	"strings"
	"testing"
)

func TestWelcomeMessage(t *testing.T) {
	t.Parallel()

	msg, err := WelcomeMessage("Jane Doe", "jane@x.com")
	if err != nil {
		t.Fatalf("WelcomeMessage error: %v", err)
	}
	if msg.To != "jane@x.com" {
		t.Fatalf("to = %q", msg.To)
	}
	if msg.Subject != "Thank you for joining with us!" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Jane Doe") {
		t.Fatal("body missing recipient name")
	}
}

func TestThankYouMessage_EscapesName(t *testing.T) {
	t.Parallel()

	msg, err := ThankYouMessage("<script>alert(1)</script>", "a@b.com")
	if err != nil {
		t.Fatalf("ThankYouMessage error: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatal("name not escaped in body")
	}
}

func TestAdminSummaryMessage_OnlyProvidedFields(t *testing.T) {
	t.Parallel()

	msg := AdminSummaryMessage("admin@x.com", "quote", []AdminSummaryField{
		{Label: "Name", Value: "A B"},
		{Label: "Email", Value: "a@b.com"},
		{Label: "City", Value: "Springfield"},
	})

	if msg.Subject != "New quote Form Submission" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Springfield") {
		t.Fatal("provided field missing")
	}
	if strings.Contains(msg.HTML, "Mobile") {
		t.Fatal("absent field rendered")
	}
}
