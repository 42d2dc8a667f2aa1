package service

import (
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// personalEmailDomains are mailbox providers whose domain says nothing about
// the company a contact works for
var personalEmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"msn.com":        true,
	"icloud.com":     true,
	"me.com":         true,
	"aol.com":        true,
	"proton.me":      true,
	"protonmail.com": true,
	"gmx.com":        true,
	"yandex.com":     true,
	"zoho.com":       true,
}

func normalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

func isEmail(handle string) bool {
	return validate.Var(handle, "required,email") == nil
}

// domainFromEmail returns the lower-cased domain of an email, without a leading "www."
func domainFromEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(email[at+1:]), "www.")
}

func isWorkDomain(domain string) bool {
	return domain != "" && !personalEmailDomains[domain]
}

// companyNameFromDomain turns "mail.acme.co.uk" into "Acme" using the
// registrable part of the domain
func companyNameFromDomain(domain string) string {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		// bare suffixes and single labels such as "localhost"
		registrable = domain
	}

	name, _, _ := strings.Cut(registrable, ".")
	return capitalize(name)
}

// namesFromParticipant splits a display name into first and last name,
// falling back to the local part of the email ("jane.doe" -> "Jane", "Doe")
func namesFromParticipant(displayName, email string) (string, string) {
	displayName = strings.TrimSpace(displayName)
	if displayName != "" && !strings.EqualFold(displayName, email) {
		first, last, _ := strings.Cut(displayName, " ")
		return first, strings.TrimSpace(last)
	}

	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return capitalize(parts[0]), ""
	}
	return capitalize(parts[0]), capitalize(parts[len(parts)-1])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
