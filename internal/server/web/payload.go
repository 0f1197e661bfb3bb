package web

// sendMessageRequest is the body of POST /send_message. Whitespace-only
// content passes decoding and is rejected by the messages service.
type sendMessageRequest struct {
	Content string `json:"content"`
}

// credentialsForm backs both the login and the registration forms.
type credentialsForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=128"`
}
