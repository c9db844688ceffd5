package email

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/elemental-io/elemental/pkg/apperr"
)

// Message is one outbound email. HTML is the rendered body; Text, when set,
// is an additional plain-text alternative.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

func (m *Message) validate() error {
	if m.From == "" {
		return apperr.MissingField("from")
	}
	if len(m.To) == 0 {
		return apperr.MissingField("recipients")
	}
	for _, rcpt := range m.To {
		if !strings.Contains(rcpt, "@") {
			return apperr.BadFormat("recipients", "value is not a valid email address")
		}
	}
	return nil
}

const boundary = "elemental-mime-boundary"

// bytes renders the RFC 5322 wire form. A message with both Text and HTML
// becomes multipart/alternative, otherwise a single text/html part.
func (m *Message) bytes() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if m.Text != "" {
		fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(m.Text)
		fmt.Fprintf(&buf, "\r\n--%s\r\n", boundary)
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		buf.WriteString(m.HTML)
		fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)
	} else {
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		buf.WriteString(m.HTML)
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}
