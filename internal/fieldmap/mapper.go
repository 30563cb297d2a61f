// Package fieldmap extrai um lead normalizado de payloads de webhook cujo
// formato varia por plataforma. Nenhuma função aqui faz I/O ou retorna erro.
package fieldmap

import (
	"strings"
)

// LeadRecord é o formato comum de todas as plataformas. Campo vazio = ausente.
type LeadRecord struct {
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	FirstName string            `json:"first_name,omitempty"`
	LastName  string            `json:"last_name,omitempty"`
	Zipcode   string            `json:"zipcode,omitempty"`
	City      string            `json:"city,omitempty"`
	Country   string            `json:"country,omitempty"`
	Consent   *Consent          `json:"consent,omitempty"`
	Payload   map[string]any    `json:"payload"`
	UTM       map[string]string `json:"utm,omitempty"`
}

// Consent só existe quando o formulário registrou um aceite.
type Consent struct {
	Granted    bool   `json:"granted"`
	Disclosure string `json:"disclosure,omitempty"`
}

// Mapper tenta cada Extractor na ordem e usa o primeiro que devolve campos.
type Mapper struct {
	extractors []Extractor
}

func New(extractors ...Extractor) *Mapper {
	if len(extractors) == 0 {
		extractors = DefaultExtractors()
	}
	return &Mapper{extractors: extractors}
}

// DefaultExtractors: Meta, TikTok e, por último, o payload plano.
func DefaultExtractors() []Extractor {
	return []Extractor{metaExtractor{}, tiktokExtractor{}, flatExtractor{}}
}

var defaultMapper = New()

// Map usa os extractors padrão.
func Map(payload map[string]any) LeadRecord {
	return defaultMapper.Map(payload)
}

func (m *Mapper) Map(payload map[string]any) LeadRecord {
	record := LeadRecord{Payload: payload}
	if payload == nil {
		return record
	}

	var fields map[string]string
	var envelope map[string]any
	for _, ex := range m.extractors {
		f, env, ok := ex.Extract(payload)
		if ok && len(f) > 0 {
			fields, envelope = f, env
			break
		}
	}
	if fields == nil {
		fields = map[string]string{}
	}

	record.Email = strings.ToLower(lookup(fields, emailAliases))
	record.Phone = lookup(fields, phoneAliases)
	record.FirstName = lookup(fields, firstNameAliases)
	record.LastName = lookup(fields, lastNameAliases)
	if record.FirstName == "" && record.LastName == "" {
		record.FirstName, record.LastName = splitFullName(lookup(fields, fullNameAliases))
	}
	record.Zipcode = lookup(fields, zipcodeAliases)
	record.City = lookup(fields, cityAliases)
	record.Country = lookup(fields, countryAliases)
	record.Consent = extractConsent(fields, payload)
	record.UTM = extractUTM(fields, envelope, payload)

	return record
}

func lookup(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(fields[alias]); v != "" {
			return v
		}
	}
	return ""
}

func splitFullName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func extractConsent(fields map[string]string, payload map[string]any) *Consent {
	disclosure := lookup(fields, disclosureAliases)

	for _, alias := range consentAliases {
		if v, ok := fields[alias]; ok {
			if !isTruthy(v) {
				return nil
			}
			return &Consent{Granted: true, Disclosure: disclosure}
		}
	}

	// formato objeto: {"consent": {"granted": true, "text": "..."}}
	if obj, ok := payload["consent"].(map[string]any); ok {
		granted := false
		for _, k := range []string{"granted", "accepted", "value"} {
			if v, ok := obj[k]; ok {
				granted = isTruthy(stringify(v))
				break
			}
		}
		if !granted {
			return nil
		}
		for _, k := range []string{"disclosure", "text", "consent_text"} {
			if s := stringify(obj[k]); s != "" {
				disclosure = s
				break
			}
		}
		return &Consent{Granted: true, Disclosure: disclosure}
	}
	return nil
}

func extractUTM(fields map[string]string, envelope, payload map[string]any) map[string]string {
	utm := map[string]string{}
	sources := []map[string]string{fields, flatten(envelope), flatten(payload)}
	if nested, ok := payload["utm"].(map[string]any); ok {
		sources = append(sources, prefixUTM(flatten(nested)))
	}

	for target, aliases := range utmAliases {
		for _, src := range sources {
			if v := lookup(src, aliases); v != "" {
				utm[target] = v
				break
			}
		}
	}
	if len(utm) == 0 {
		return nil
	}
	return utm
}

// prefixUTM aceita {"source": "fb"} além de {"utm_source": "fb"}.
func prefixUTM(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
		if !strings.HasPrefix(k, "utm_") {
			out["utm_"+k] = v
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y", "oui", "on", "accepted", "checked":
		return true
	}
	return false
}
