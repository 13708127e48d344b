package entity

// InboundEmail is the relevant subset of a Postmark inbound webhook
// payload. HTMLBody is only consulted when TextBody is empty.
type InboundEmail struct {
	From     string
	Subject  string
	TextBody string
	HTMLBody string
}
