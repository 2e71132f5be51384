package domain

import "time"

// Lead representa um contato comercial; nunca é alterado após a inserção
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLeadRequest contém os dados de entrada para um novo lead
type NewLeadRequest struct {
	Name   string
	Email  string
	Phone  string
	Source string
}

// Contact é a visão exposta para os serviços de envio de e-mail e mensagens
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
