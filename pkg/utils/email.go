package utils

import (
	"regexp"
	"strings"
)

// localpart@domain.tld, com caracteres de palavra, pontos ou hifens
var emailPattern = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+\.\w+$`)

// IsValidEmail verifica apenas o formato do endereço, sem consulta de rede
func IsValidEmail(address string) bool {
	return emailPattern.MatchString(address)
}

// NormalizeEmail remove espaços e converte o endereço para minúsculas
func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
