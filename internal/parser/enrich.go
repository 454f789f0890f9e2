package parser

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"']+`)
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// enrich derives metadata from a parsed email: counts, extracted entities,
// cleaned body, time classification and subject thread flags
func (p *Parser) enrich(email *core.Email) {
	email.Body = cleanBody(email.Body)

	meta := &email.Metadata
	meta.WordCount = len(strings.Fields(email.Body))
	meta.CharacterCount = utf8.RuneCountInString(email.Body)
	if email.Body == "" {
		meta.LineCount = 0
	} else {
		meta.LineCount = strings.Count(email.Body, "\n") + 1
	}
	meta.HasAttachments = len(email.Attachments) > 0
	meta.AttachmentCount = len(email.Attachments)

	text := email.Subject + "\n" + email.Body
	meta.EmailAddresses = dedupe(emailPattern.FindAllString(text, -1))
	meta.URLs = dedupe(urlPattern.FindAllString(text, -1))
	meta.IPAddresses = dedupe(ipPattern.FindAllString(text, -1))
	meta.Domains = extractDomains(meta.EmailAddresses, meta.URLs)

	p.classifyDate(email)
	classifySubject(email)
	detectLanguage(email)
}

// cleanBody strips quoted-reply lines and collapses runs of 3+ blank lines
// down to 2
func cleanBody(body string) string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	cleaned := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun > 2 {
				continue
			}
		} else {
			blankRun = 0
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// classifyDate buckets the Date header into a time slot and weekday.
// An unparseable date is recoverable: the fields stay empty.
func (p *Parser) classifyDate(email *core.Email) {
	if email.Date == "" {
		return
	}
	t, err := mail.ParseDate(email.Date)
	if err != nil {
		p.logger.Warn("Date header left unclassified",
			zap.String("date", email.Date),
			zap.NamedError("reason", core.ErrMalformedDate))
		return
	}

	hour := t.Hour()
	switch {
	case hour >= 6 && hour < 12:
		email.Metadata.TimeSlot = "morning"
	case hour >= 12 && hour < 18:
		email.Metadata.TimeSlot = "afternoon"
	case hour >= 18 && hour < 22:
		email.Metadata.TimeSlot = "evening"
	default:
		email.Metadata.TimeSlot = "night"
	}
	email.Metadata.DayOfWeek = t.Weekday().String()
}

// classifySubject counts re:/fwd:/fw: prefix tokens to set reply/forward
// flags and thread depth
func classifySubject(email *core.Email) {
	rest := strings.TrimSpace(email.Subject)
	for {
		lower := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(lower, "re:"):
			email.Metadata.IsReply = true
			rest = strings.TrimSpace(rest[3:])
		case strings.HasPrefix(lower, "fwd:"):
			email.Metadata.IsForward = true
			rest = strings.TrimSpace(rest[4:])
		case strings.HasPrefix(lower, "fw:"):
			email.Metadata.IsForward = true
			rest = strings.TrimSpace(rest[3:])
		default:
			return
		}
		email.Metadata.ThreadDepth++
	}
}

func detectLanguage(email *core.Email) {
	if len(email.Body) < 20 {
		return
	}
	info := whatlanggo.Detect(email.Body)
	if info.IsReliable() {
		email.Metadata.Language = whatlanggo.LangToString(info.Lang)
	}
}

// extractDomains derives lower-cased, de-duplicated domains from extracted
// email addresses and URLs; malformed entries are silently skipped
func extractDomains(emails, urls []string) []string {
	var domains []string
	seen := make(map[string]struct{})
	add := func(domain string) {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			return
		}
		if _, ok := seen[domain]; ok {
			return
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}

	for _, addr := range emails {
		parts := strings.Split(addr, "@")
		if len(parts) != 2 {
			continue
		}
		add(parts[1])
	}
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue
		}
		add(u.Hostname())
	}
	return domains
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
