package httpServices

type MailRequest struct {
	To       string `json:"to"`
	FromName string `json:"from_name"`
	ReplyTo  string `json:"reply_to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type MailResponse struct {
	Delivered bool   `json:"delivered"`
	Message   string `json:"message"`
}
