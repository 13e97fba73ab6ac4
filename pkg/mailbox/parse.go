package mailbox

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// Parse decodes a raw RFC 5322 message.
// Unknown charsets are tolerated; the raw text is kept.
func Parse(r io.Reader) (Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return Message{}, fmt.Errorf("failed to read message: %w", err)
	}
	defer mr.Close()

	var msg Message
	msg.Subject, _ = mr.Header.Subject()
	msg.From = addresses(&mr.Header, "From")
	msg.To = addresses(&mr.Header, "To")
	msg.Date, _ = mr.Header.Date()

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return msg, fmt.Errorf("failed to read part: %w", err)
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		if contentType != "" && contentType != "text/plain" {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			return msg, fmt.Errorf("failed to read body: %w", err)
		}
		msg.Body = strings.TrimSpace(string(body))
		break
	}
	return msg, nil
}

func addresses(h *mail.Header, key string) string {
	list, err := h.AddressList(key)
	if err != nil || len(list) == 0 {
		raw, _ := h.Text(key)
		return raw
	}
	out := make([]string, 0, len(list))
	for _, a := range list {
		if a.Name == "" {
			out = append(out, a.Address)
			continue
		}
		out = append(out, fmt.Sprintf("%s <%s>", a.Name, a.Address))
	}
	return strings.Join(out, ", ")
}
