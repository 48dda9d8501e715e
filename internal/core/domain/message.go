package domain

import "fmt"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a citation attached to an assistant answer.
type Source struct {
	Filename string `json:"filename"`
	Page     int    `json:"page,omitempty"`
}

// Label renders the citation for display. Page 0 means the source has
// no page, e.g. a plain text file.
func (s Source) Label() string {
	if s.Page > 0 {
		return fmt.Sprintf("%s (p. %d)", s.Filename, s.Page)
	}
	return s.Filename
}

// Message is one entry in the conversation history. History is
// append-only; messages are never edited or removed once appended.
type Message struct {
	Role    Role
	Text    string
	Sources []Source
}

// Answer is the payload of a successful chat response.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
