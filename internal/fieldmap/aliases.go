package fieldmap

// Aliases já normalizados por normalizeKey.
var (
	emailAliases      = []string{"email", "e_mail", "email_address", "mail", "courriel"}
	phoneAliases      = []string{"phone", "phone_number", "telephone", "tel", "mobile", "mobile_phone"}
	firstNameAliases  = []string{"first_name", "firstname", "prenom", "given_name"}
	lastNameAliases   = []string{"last_name", "lastname", "nom", "family_name", "surname"}
	fullNameAliases   = []string{"full_name", "fullname", "name", "nom_complet"}
	zipcodeAliases    = []string{"zipcode", "zip", "zip_code", "postal_code", "code_postal", "post_code", "postcode"}
	cityAliases       = []string{"city", "ville"}
	countryAliases    = []string{"country", "pays", "country_code"}
	consentAliases    = []string{"consent", "optin", "opt_in", "gdpr_consent", "marketing_consent", "consentement"}
	disclosureAliases = []string{"consent_text", "disclosure", "consent_disclosure"}
)

var utmAliases = map[string][]string{
	"utm_source":   {"utm_source"},
	"utm_medium":   {"utm_medium"},
	"utm_campaign": {"utm_campaign"},
	"utm_term":     {"utm_term"},
	"utm_content":  {"utm_content"},
	"ad_id":        {"ad_id"},
	"adset_id":     {"adset_id", "adgroup_id", "ad_group_id"},
	"campaign_id":  {"campaign_id"},
	"form_id":      {"form_id"},
}
