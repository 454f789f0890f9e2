package parser

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

func newTestParser() *Parser {
	return New(zap.NewNop())
}

func TestParseEMLRoundTrip(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: Project update\r\n" +
		"Date: Mon, 02 Jun 2025 09:15:00 +0000\r\n" +
		"\r\n" +
		"Hello Bob,\r\nThe report numbers look fine.\r\n"

	email, err := newTestParser().ParseOne([]byte(raw), "update.eml")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}

	if email.Headers["subject"] != "Project update" {
		t.Errorf("headers[subject] = %q, want %q", email.Headers["subject"], "Project update")
	}
	if email.Headers["from"] != "alice@example.com" {
		t.Errorf("headers[from] = %q, want %q", email.Headers["from"], "alice@example.com")
	}
	if email.Subject != "Project update" || email.From != "alice@example.com" {
		t.Errorf("Subject/From = %q/%q, want literal header values", email.Subject, email.From)
	}
	if len(email.To) != 1 || email.To[0] != "bob@example.com" {
		t.Errorf("To = %v, want [bob@example.com]", email.To)
	}
	if !strings.Contains(email.Body, "Hello Bob,") {
		t.Errorf("body %q is missing message text", email.Body)
	}
	if email.Metadata.TimeSlot != "morning" {
		t.Errorf("TimeSlot = %q, want %q", email.Metadata.TimeSlot, "morning")
	}
	if email.Metadata.DayOfWeek != "Monday" {
		t.Errorf("DayOfWeek = %q, want %q", email.Metadata.DayOfWeek, "Monday")
	}
}

func TestParseEMLHeaderFolding(t *testing.T) {
	raw := "From: a@b.com\n" +
		"X-Mailer: first part\n" +
		" second part\n" +
		"\tthird part\n" +
		"\n" +
		"body\n"

	email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}
	want := "first part second part third part"
	if email.Headers["x-mailer"] != want {
		t.Errorf("headers[x-mailer] = %q, want %q", email.Headers["x-mailer"], want)
	}
}

func TestParseTimeSlots(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"Mon, 02 Jun 2025 06:00:00 +0000", "morning"},
		{"Mon, 02 Jun 2025 11:59:00 +0000", "morning"},
		{"Mon, 02 Jun 2025 12:00:00 +0000", "afternoon"},
		{"Mon, 02 Jun 2025 18:00:00 +0000", "evening"},
		{"Mon, 02 Jun 2025 21:59:00 +0000", "evening"},
		{"Mon, 02 Jun 2025 22:00:00 +0000", "night"},
		{"Mon, 02 Jun 2025 03:00:00 +0000", "night"},
	}

	for _, tt := range tests {
		raw := "From: a@b.com\nDate: " + tt.date + "\n\nsome body text\n"
		email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
		if err != nil {
			t.Fatalf("ParseOne(%q) error: %v", tt.date, err)
		}
		if email.Metadata.TimeSlot != tt.want {
			t.Errorf("TimeSlot for %q = %q, want %q", tt.date, email.Metadata.TimeSlot, tt.want)
		}
	}
}

func TestParseMalformedDateIsRecoverable(t *testing.T) {
	raw := "From: a@b.com\nDate: not a real date\n\nsome body text\n"
	email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}
	if email.Metadata.TimeSlot != "" || email.Metadata.DayOfWeek != "" {
		t.Errorf("time fields = %q/%q, want empty for malformed date",
			email.Metadata.TimeSlot, email.Metadata.DayOfWeek)
	}
}

func TestSubjectThreadFlags(t *testing.T) {
	tests := []struct {
		subject   string
		isReply   bool
		isForward bool
		depth     int
	}{
		{"Budget", false, false, 0},
		{"Re: Budget", true, false, 1},
		{"RE: re: Budget", true, false, 2},
		{"Fwd: Budget", false, true, 1},
		{"FW: Budget", false, true, 1},
		{"Re: Fwd: Re: Budget", true, true, 3},
	}

	for _, tt := range tests {
		raw := "From: a@b.com\nSubject: " + tt.subject + "\n\nsome body text\n"
		email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
		if err != nil {
			t.Fatalf("ParseOne(%q) error: %v", tt.subject, err)
		}
		m := email.Metadata
		if m.IsReply != tt.isReply || m.IsForward != tt.isForward || m.ThreadDepth != tt.depth {
			t.Errorf("subject %q: reply=%v forward=%v depth=%d, want %v/%v/%d",
				tt.subject, m.IsReply, m.IsForward, m.ThreadDepth, tt.isReply, tt.isForward, tt.depth)
		}
	}
}

func TestBodyCleaning(t *testing.T) {
	raw := "From: a@b.com\n\n" +
		"New text\n" +
		"> old quoted line\n" +
		"> another quoted line\n" +
		"\n\n\n\n" +
		"After the gap\n"

	email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}
	if strings.Contains(email.Body, "quoted") {
		t.Errorf("body %q still contains quoted-reply lines", email.Body)
	}
	if strings.Contains(email.Body, "\n\n\n\n") {
		t.Errorf("body %q contains more than two consecutive blank lines", email.Body)
	}
}

func TestMetadataExtraction(t *testing.T) {
	raw := "From: alice@example.com\n\n" +
		"Contact carol@Sample.ORG or visit https://portal.sample.org/login\n" +
		"Server is at 10.1.2.3 and also 10.1.2.3 again.\n" +
		"Duplicate mention of carol@Sample.ORG here.\n"

	email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}
	m := email.Metadata

	if len(m.EmailAddresses) != 1 {
		t.Errorf("EmailAddresses = %v, want one de-duplicated entry", m.EmailAddresses)
	}
	if len(m.URLs) != 1 || m.URLs[0] != "https://portal.sample.org/login" {
		t.Errorf("URLs = %v, want the portal URL", m.URLs)
	}
	if len(m.IPAddresses) != 1 || m.IPAddresses[0] != "10.1.2.3" {
		t.Errorf("IPAddresses = %v, want [10.1.2.3]", m.IPAddresses)
	}

	wantDomains := map[string]bool{"sample.org": true, "portal.sample.org": true}
	for _, domain := range m.Domains {
		if domain != strings.ToLower(domain) {
			t.Errorf("domain %q is not lower-cased", domain)
		}
		delete(wantDomains, domain)
	}
	if len(wantDomains) != 0 {
		t.Errorf("Domains = %v, missing %v", m.Domains, wantDomains)
	}

	if m.WordCount == 0 || m.CharacterCount == 0 || m.LineCount == 0 {
		t.Errorf("counts = %d/%d/%d, want non-zero", m.WordCount, m.CharacterCount, m.LineCount)
	}
}

func TestCharacterCountIsRuneBased(t *testing.T) {
	raw := "From: alice@example.com\n\nBitte prüfen: café menü\n"

	email, err := newTestParser().ParseOne([]byte(raw), "m.eml")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}

	body := "Bitte prüfen: café menü"
	if got := email.Metadata.CharacterCount; got != utf8.RuneCountInString(body) {
		t.Errorf("CharacterCount = %d, want %d runes (body is %d bytes)",
			got, utf8.RuneCountInString(body), len(body))
	}
}

func TestParseTXT(t *testing.T) {
	raw := "Subject: Weekly notes\n" +
		"From: team@sample.org\n" +
		"\n" +
		"Nothing unusual this week.\n"

	email, err := newTestParser().ParseOne([]byte(raw), "notes.txt")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}
	if email.Subject != "Weekly notes" {
		t.Errorf("Subject = %q, want %q", email.Subject, "Weekly notes")
	}
	if email.From != "team@sample.org" {
		t.Errorf("From = %q, want %q", email.From, "team@sample.org")
	}
	if !strings.Contains(email.Body, "Nothing unusual") {
		t.Errorf("body %q is missing message text", email.Body)
	}
	if strings.Contains(email.Body, "Weekly notes") {
		t.Errorf("body %q still contains a recognized header line", email.Body)
	}
}

func TestParseMSGBestEffort(t *testing.T) {
	raw := "\x00\x01\x02Subject: Invoice request\r\n" +
		"From: accounting@sample.org\r\n" +
		"\x03\x04Please process the attached invoice today.\r\n"

	email, err := newTestParser().ParseOne([]byte(raw), "invoice.msg")
	if err != nil {
		t.Fatalf("ParseOne() error: %v", err)
	}
	if email.Subject != "Invoice request" {
		t.Errorf("Subject = %q, want %q", email.Subject, "Invoice request")
	}
	if email.From != "accounting@sample.org" {
		t.Errorf("From = %q, want %q", email.From, "accounting@sample.org")
	}
	if strings.ContainsRune(email.Body, '\x00') {
		t.Error("body still contains binary bytes")
	}
}

func TestParseMBOX(t *testing.T) {
	raw := "From alice@example.com Mon Jun  2 09:15:00 2025\n" +
		"From: alice@example.com\n" +
		"Subject: First\n" +
		"\n" +
		"first message body\n" +
		"\n" +
		"From bob@example.com Mon Jun  2 10:00:00 2025\n" +
		"From: bob@example.com\n" +
		"Subject: Second\n" +
		"\n" +
		"second message body\n"

	emails, err := newTestParser().Parse([]byte(raw), "archive.mbox")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("Parse() returned %d emails, want 2", len(emails))
	}
	if emails[0].Subject != "First" || emails[1].Subject != "Second" {
		t.Errorf("subjects = %q/%q, want First/Second", emails[0].Subject, emails[1].Subject)
	}
}

func TestParseMBOXSingleSection(t *testing.T) {
	raw := "From alice@example.com Mon Jun  2 09:15:00 2025\n" +
		"From: alice@example.com\n" +
		"Subject: Only one\n" +
		"\n" +
		"lone message body\n"

	emails, err := newTestParser().Parse([]byte(raw), "single.mbox")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("Parse() returned %d emails, want 1", len(emails))
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := newTestParser().Parse([]byte("whatever"), "report.pdf")
	var formatErr *core.UnsupportedFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Parse() error = %v, want UnsupportedFormatError", err)
	}
	if formatErr.Ext != ".pdf" {
		t.Errorf("Ext = %q, want %q", formatErr.Ext, ".pdf")
	}
}

func TestEmptyContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty file", ""},
		{"whitespace body", "From: a@b.com\n\n   \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser().Parse([]byte(tt.raw), "empty.eml")
			if !errors.Is(err, core.ErrEmptyContent) {
				t.Errorf("Parse() error = %v, want ErrEmptyContent", err)
			}
		})
	}
}
