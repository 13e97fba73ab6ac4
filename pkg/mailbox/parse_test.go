package mailbox_test

import (
	"strings"
	"testing"

	"smart-assistant/pkg/mailbox"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSubject string
		wantFrom    string
		wantTo      string
		wantBody    string
	}{
		{
			name: "plain text",
			raw: "From: Alice <alice@example.com>\r\n" +
				"To: bob@example.com\r\n" +
				"Subject: Lunch on Friday\r\n" +
				"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
				"Content-Type: text/plain; charset=utf-8\r\n" +
				"\r\n" +
				"Lunch at noon, Friday.\r\n",
			wantSubject: "Lunch on Friday",
			wantFrom:    "Alice <alice@example.com>",
			wantTo:      "bob@example.com",
			wantBody:    "Lunch at noon, Friday.",
		},
		{
			name: "encoded subject and multipart",
			raw: "From: carol@example.com\r\n" +
				"To: bob@example.com, dave@example.com\r\n" +
				"Subject: =?UTF-8?B?5byA5Lya6YCa55+l?=\r\n" +
				"MIME-Version: 1.0\r\n" +
				"Content-Type: multipart/alternative; boundary=XYZ\r\n" +
				"\r\n" +
				"--XYZ\r\n" +
				"Content-Type: text/html; charset=utf-8\r\n" +
				"\r\n" +
				"<p>html body</p>\r\n" +
				"--XYZ\r\n" +
				"Content-Type: text/plain; charset=utf-8\r\n" +
				"Content-Transfer-Encoding: quoted-printable\r\n" +
				"\r\n" +
				"Meeting at 3pm =E2=80=93 room 2\r\n" +
				"--XYZ--\r\n",
			wantSubject: "开会通知",
			wantFrom:    "carol@example.com",
			wantTo:      "bob@example.com, dave@example.com",
			wantBody:    "Meeting at 3pm – room 2",
		},
		{
			name: "attachment only",
			raw: "From: carol@example.com\r\n" +
				"Subject: Scan\r\n" +
				"Content-Type: multipart/mixed; boundary=B\r\n" +
				"\r\n" +
				"--B\r\n" +
				"Content-Type: application/pdf\r\n" +
				"Content-Disposition: attachment; filename=scan.pdf\r\n" +
				"\r\n" +
				"%PDF\r\n" +
				"--B--\r\n",
			wantSubject: "Scan",
			wantFrom:    "carol@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := mailbox.Parse(strings.NewReader(tt.raw))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if msg.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", msg.Subject, tt.wantSubject)
			}
			if msg.From != tt.wantFrom {
				t.Errorf("From = %q, want %q", msg.From, tt.wantFrom)
			}
			if msg.To != tt.wantTo {
				t.Errorf("To = %q, want %q", msg.To, tt.wantTo)
			}
			if msg.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", msg.Body, tt.wantBody)
			}
		})
	}
}
