package domain

// SmtpSettings configures the outbound mail transport.
type SmtpSettings struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Secure    bool   `json:"secure"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
}

// Complete reports whether the settings carry everything a dispatch needs.
func (s SmtpSettings) Complete() bool {
	return s.Host != "" && s.Username != "" && s.Password != "" && s.FromEmail != ""
}

// AppSettings is the singleton application configuration aggregate.
type AppSettings struct {
	AppName      string       `json:"appName"`
	LogoURL      string       `json:"logoUrl"`
	PrimaryColor string       `json:"primaryColor"`
	CompanyName  string       `json:"companyName"`
	ContactEmail string       `json:"contactEmail"`
	DateFormat   string       `json:"dateFormat"`
	Timezone     string       `json:"timezone"`
	Smtp         SmtpSettings `json:"smtp"`
}

// DefaultSettings returns the factory configuration.
func DefaultSettings() AppSettings {
	return AppSettings{
		AppName:      "SGP",
		LogoURL:      "",
		PrimaryColor: "#4F46E5",
		CompanyName:  "Minha Empresa",
		ContactEmail: "contato@empresa.com",
		DateFormat:   "DD/MM/YYYY",
		Timezone:     "Africa/Luanda",
		Smtp: SmtpSettings{
			Port:   587,
			Secure: false,
		},
	}
}

// SmtpPatch is a partial SMTP update. Nil fields are left unchanged.
type SmtpPatch struct {
	Host      *string `json:"host"`
	Port      *int    `json:"port"`
	Secure    *bool   `json:"secure"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	FromEmail *string `json:"fromEmail"`
	FromName  *string `json:"fromName"`
}

// SettingsPatch is a partial settings update. Top-level fields overwrite
// when present; the nested smtp patch merges field-by-field so a partial
// SMTP update never erases unrelated SMTP fields.
type SettingsPatch struct {
	AppName      *string    `json:"appName"`
	LogoURL      *string    `json:"logoUrl"`
	PrimaryColor *string    `json:"primaryColor"`
	CompanyName  *string    `json:"companyName"`
	ContactEmail *string    `json:"contactEmail"`
	DateFormat   *string    `json:"dateFormat"`
	Timezone     *string    `json:"timezone"`
	Smtp         *SmtpPatch `json:"smtp"`
}
