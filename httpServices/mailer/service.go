package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// MailClient talks to the outbound mail relay. The relay owns templating-free
// plain-text delivery; this client only reports whether the relay accepted
// the message.
type MailClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *MailClient {
	return &MailClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// SendMessage delivers one plain-text message. The boolean reflects the
// relay's delivery verdict; an error means the relay itself was unreachable.
func (c *MailClient) SendMessage(to, fromDisplayName, replyTo, subject, body string) (bool, error) {
	payload, err := json.Marshal(MailRequest{
		To:       to,
		FromName: fromDisplayName,
		ReplyTo:  replyTo,
		Subject:  subject,
		Body:     body,
	})
	if err != nil {
		return false, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/mail/send/", bytes.NewBuffer(payload))
	if err != nil {
		return false, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return false, errors.New("mail relay returned non-OK status: " + resp.Status)
	}

	var apiResp MailResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return false, err
	}

	return apiResp.Delivered, nil
}
