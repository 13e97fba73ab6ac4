package mailbox

import "time"

// Default IMAP ports.
const (
	DefaultTLSPort   = 993
	DefaultPlainPort = 143
	DefaultFolder    = "INBOX"
)

// Config describes one IMAP account and folder.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Folder   string
	UseSSL   bool
	// Timeout bounds each IMAP command. Zero means no limit.
	Timeout time.Duration
}

// Message is a decoded e-mail.
type Message struct {
	UID     uint32
	Subject string
	From    string
	To      string
	Date    time.Time
	// Body is the first non-attachment text/plain part, decoded to UTF-8.
	Body string
}
