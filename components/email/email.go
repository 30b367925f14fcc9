package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender dispatches one message per Run call over SMTP, bound to a single
// receiver at construction time. The send function is swappable for tests.
type Sender struct {
	host     string
	port     string
	from     string
	fromName string
	passkey  string
	receiver string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender builds a sender for one receiver. Settings keys: smtp_host
// (default smtp.gmail.com), smtp_port (default 587).
func NewSender(settings map[string]string, senderEmail, senderName, passkey, receiver string) *Sender {
	host := settings["smtp_host"]
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := settings["smtp_port"]
	if port == "" {
		port = "587"
	}
	return &Sender{
		host:     host,
		port:     port,
		from:     senderEmail,
		fromName: senderName,
		passkey:  passkey,
		receiver: receiver,
		send:     smtp.SendMail,
	}
}

// Receiver returns the address this sender was constructed for.
func (s *Sender) Receiver() string { return s.receiver }

// Run sends content as one email. A leading "Subject:" line of the content
// becomes the subject, as produced by the content generator.
func (s *Sender) Run(ctx context.Context, content string) (string, error) {
	subject, body := SplitSubject(content)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", s.receiver)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.from, s.passkey, s.host)
	if err := s.send(s.host+":"+s.port, auth, s.from, []string{s.receiver}, []byte(msg.String())); err != nil {
		return "", fmt.Errorf("sending to %s: %w", s.receiver, err)
	}
	return fmt.Sprintf("Email sent to %s", s.receiver), nil
}

// SplitSubject separates a leading "Subject: ..." line from the message body.
// Without one, a generic subject is used and the content is the body.
func SplitSubject(content string) (subject, body string) {
	trimmed := strings.TrimSpace(content)
	line, rest, found := strings.Cut(trimmed, "\n")
	if found && strings.HasPrefix(strings.ToLower(line), "subject:") {
		return strings.TrimSpace(line[len("subject:"):]), strings.TrimSpace(rest)
	}
	return "A message for you", trimmed
}
