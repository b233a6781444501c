package mailer

// Job is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text are used as-is; HTML is optional.
type Job struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}
