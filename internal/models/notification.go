package models

// Notification is a single chat message addressed to one chat or channel.
type Notification struct {
	Recipient string
	Text      string
}
