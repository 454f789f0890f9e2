package parser

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/core"
)

// Parser normalizes raw email bytes into structured core.Email records.
// Dispatch is by file extension; enrichment always runs after the
// format-specific parse.
type Parser struct {
	logger *zap.Logger
}

// New creates a new Parser
func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse parses raw email bytes into one or more emails. Every format yields a
// single record except .mbox, which yields one record per message. An
// unrecognized extension fails fast with an UnsupportedFormatError; an email
// with neither body nor attachments fails with ErrEmptyContent.
func (p *Parser) Parse(raw []byte, filename string) ([]*core.Email, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		emails []*core.Email
		err    error
	)
	switch ext {
	case ".eml":
		var email *core.Email
		email, err = p.parseEML(raw)
		emails = []*core.Email{email}
	case ".msg":
		var email *core.Email
		email, err = p.parseMSG(raw)
		emails = []*core.Email{email}
	case ".txt":
		var email *core.Email
		email, err = p.parseTXT(raw)
		emails = []*core.Email{email}
	case ".mbox":
		emails, err = p.parseMBOX(raw)
	default:
		return nil, &core.UnsupportedFormatError{Ext: ext}
	}
	if err != nil {
		return nil, err
	}

	for _, email := range emails {
		email.SourceFile = filename
		p.enrich(email)
		if strings.TrimSpace(email.Body) == "" && len(email.Attachments) == 0 {
			return nil, core.ErrEmptyContent
		}
	}
	return emails, nil
}

// ParseOne parses formats that are expected to contain a single message
func (p *Parser) ParseOne(raw []byte, filename string) (*core.Email, error) {
	emails, err := p.Parse(raw, filename)
	if err != nil {
		return nil, err
	}
	return emails[0], nil
}

// parseEML parses an RFC 2822 style message: a hand header scan for the
// literal header lines, then a MIME walk for the text body and attachments.
func (p *Parser) parseEML(raw []byte) (*core.Email, error) {
	headers, rawBody := parseHeaderBlock(string(raw))

	email := &core.Email{
		Headers: headers,
		Subject: headers["subject"],
		From:    headers["from"],
		Date:    headers["date"],
		Body:    rawBody,
	}
	if to, ok := headers["to"]; ok {
		email.To = splitAddressList(to)
	}

	// The MIME walk replaces the raw body with decoded text parts and
	// collects attachments. Anything go-message cannot read keeps the raw
	// header/body split from above.
	body, attachments, err := p.walkMIME(raw)
	if err == nil {
		if strings.TrimSpace(body) != "" {
			email.Body = body
		}
		email.Attachments = attachments
	} else {
		p.logger.Debug("MIME walk failed, keeping raw body", zap.Error(err))
	}

	return email, nil
}

// walkMIME extracts decoded inline text and attachment metadata
func (p *Parser) walkMIME(raw []byte) (string, []core.Attachment, error) {
	mr, err := gomail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return "", nil, err
	}

	var (
		text        strings.Builder
		attachments []core.Attachment
	)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A broken part does not discard what was already read
			break
		}

		switch header := part.Header.(type) {
		case *gomail.InlineHeader:
			contentType, _, _ := header.ContentType()
			if contentType != "" && !strings.HasPrefix(contentType, "text/") {
				continue
			}
			partBytes, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.Write(partBytes)
		case *gomail.AttachmentHeader:
			filename, err := header.Filename()
			if err != nil || filename == "" {
				filename = "unnamed"
			}
			partBytes, _ := io.ReadAll(part.Body)
			attachments = append(attachments, core.Attachment{
				Filename: filename,
				Size:     int64(len(partBytes)),
			})
		}
	}
	return text.String(), attachments, nil
}

var msgHeaderPatterns = map[string]*regexp.Regexp{
	"subject": regexp.MustCompile(`(?im)^Subject:[ \t]*(.+)$`),
	"from":    regexp.MustCompile(`(?im)^From:[ \t]*(.+)$`),
	"to":      regexp.MustCompile(`(?im)^To:[ \t]*(.+)$`),
	"date":    regexp.MustCompile(`(?im)^Date:[ \t]*(.+)$`),
}

// parseMSG pulls Subject/From/To/Date out of an Outlook .msg file with
// best-effort regexes. No OLE compound-document parsing is attempted; the
// readable text of the file becomes the body.
func (p *Parser) parseMSG(raw []byte) (*core.Email, error) {
	text := stripBinary(string(raw))

	headers := make(map[string]string)
	for key, pattern := range msgHeaderPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			headers[key] = strings.TrimSpace(match[1])
		}
	}

	email := &core.Email{
		Headers: headers,
		Subject: headers["subject"],
		From:    headers["from"],
		Date:    headers["date"],
		Body:    text,
	}
	if to, ok := headers["to"]; ok {
		email.To = splitAddressList(to)
	}
	return email, nil
}

// recognized header keys for plain-text files
var txtHeaderKeys = []string{"subject", "from", "to", "date", "cc"}

// parseTXT scans the first 20 lines for recognized header keys; everything
// else is body.
func (p *Parser) parseTXT(raw []byte) (*core.Email, error) {
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	headers := make(map[string]string)
	var bodyLines []string
	for i, line := range lines {
		matched := false
		if i < 20 {
			lower := strings.ToLower(line)
			for _, key := range txtHeaderKeys {
				if strings.HasPrefix(lower, key+":") {
					headers[key] = strings.TrimSpace(line[len(key)+1:])
					matched = true
					break
				}
			}
		}
		if !matched {
			bodyLines = append(bodyLines, line)
		}
	}

	email := &core.Email{
		Headers: headers,
		Subject: headers["subject"],
		From:    headers["from"],
		Date:    headers["date"],
		Body:    strings.Join(bodyLines, "\n"),
	}
	if to, ok := headers["to"]; ok {
		email.To = splitAddressList(to)
	}
	return email, nil
}

// parseMBOX splits on mbox "From " separator lines and parses each section as
// an EML message
func (p *Parser) parseMBOX(raw []byte) ([]*core.Email, error) {
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	var sections []string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(line, "From ") {
			if len(current) > 0 {
				sections = append(sections, strings.Join(current, "\n"))
			}
			current = nil
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}

	if len(sections) == 0 {
		return nil, core.ErrEmptyContent
	}

	emails := make([]*core.Email, 0, len(sections))
	for _, section := range sections {
		email, err := p.parseEML([]byte(section))
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// parseHeaderBlock splits a message into its header map and raw body. Header
// keys are lower-cased and trimmed; folded continuation lines are appended to
// the previous header value with a single space.
func parseHeaderBlock(raw string) (map[string]string, string) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	headerPart, bodyPart, found := strings.Cut(normalized, "\n\n")
	if !found {
		bodyPart = ""
	}

	headers := make(map[string]string)
	var lastKey string
	for _, line := range strings.Split(headerPart, "\n") {
		if line == "" {
			continue
		}
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && lastKey != "" {
			headers[lastKey] += " " + strings.TrimSpace(line)
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		lastKey = strings.ToLower(strings.TrimSpace(key))
		headers[lastKey] = strings.TrimSpace(value)
	}
	return headers, bodyPart
}

func splitAddressList(value string) []string {
	parts := strings.Split(value, ",")
	addrs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	return addrs
}

// stripBinary keeps printable characters and line breaks
func stripBinary(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 32 || r == 127 || r == 0xFFFD {
			return -1
		}
		return r
	}, s)
}
