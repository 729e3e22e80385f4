package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailDomainValid valida a sintaxe do endereço e confirma que o
// domínio resolve (MX ou, na falta, A/AAAA). Chamado só no cadastro,
// então o custo do lookup é aceitável.
func IsEmailDomainValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}

	_, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
