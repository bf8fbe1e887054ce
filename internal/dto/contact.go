package dto

// ContactRequest is the public contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100" example:"Ada Lovelace"`
	Email   string `json:"email" validate:"required,email,max=254" example:"ada@example.com"`
	Phone   string `json:"phone" validate:"max=20"`
	Subject string `json:"subject" validate:"required,max=200" example:"Collaboration"`
	Message string `json:"message" validate:"required" example:"Hello!"`
}

type ContactResponse struct {
	Message string `json:"message"`
}

type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,contact-status"`
}
