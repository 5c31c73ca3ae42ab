package dto

import "time"

// Marketing contact-form DTOs

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type ContactResponse struct {
	Id         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}
