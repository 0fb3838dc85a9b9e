// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// IncomingEmail is a forwarded receipt email as delivered by the webhook
// layer: HTML already stripped, body is plain UTF-8 text. The engine never
// mutates it.
type IncomingEmail struct {
	ReceivedAt time.Time
	Sender     string
	Subject    string
	Body       string
}

// SenderDomain returns the lowercased domain portion of the sender address,
// or an empty string if the address has no @.
func (e *IncomingEmail) SenderDomain() string {
	at := strings.LastIndex(e.Sender, "@")
	if at < 0 || at == len(e.Sender)-1 {
		return ""
	}
	domain := e.Sender[at+1:]
	// Strip a trailing > from "Name <orders@example.com>" style addresses.
	domain = strings.TrimSuffix(domain, ">")
	return strings.ToLower(strings.TrimSpace(domain))
}
