package entity

// Chaves singleton dentro da store "settings".
const (
	SettingsCompanyKey       = "companyData"
	SettingsNotificationsKey = "notificationSettings"
	SettingsInvoiceAPIKey    = "invoiceApiConfig"
)

// CompanyData dados cadastrais da loja usados em notas e relatórios.
type CompanyData struct {
	Name    string  `json:"name"`
	CPFCNPJ string  `json:"cpfCnpj,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Email   string  `json:"email,omitempty"`
	Address Address `json:"address,omitempty"`
	LogoURL string  `json:"logoUrl,omitempty"`
}

// NotificationSettings preferências de notificação do operador.
type NotificationSettings struct {
	ServiceCompleted bool `json:"serviceCompleted"`
	LowStock         bool `json:"lowStock"`
	DocumentIssued   bool `json:"documentIssued"`
	TrashExpiring    bool `json:"trashExpiring"`
}

// InvoiceAPIConfig credenciais do provedor externo de emissão de notas.
type InvoiceAPIConfig struct {
	APIKey      string `json:"apiKey"`
	Environment string `json:"environment"` // "homologacao" ou "producao"
	CompanyID   string `json:"companyId,omitempty"`
}
