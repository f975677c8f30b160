package domain

// Nomes das stores lógicas dentro da fachada de persistência por usuário.
// Cada uma corresponde a uma coleção `pauloCell_*` do sistema original.
const (
	StoreCustomers = "customers"
	StoreDevices   = "devices"
	StoreServices  = "services"
	StoreInventory = "inventory"
	StoreDocuments = "documents"
	StoreSettings  = "settings"
	StoreTrash     = "trash"
)

// EntityStores stores de dados de negócio, varridas no reset completo de
// estatísticas. Settings fica de fora: é configuração do operador, não dado.
var EntityStores = []string{StoreCustomers, StoreDevices, StoreServices, StoreInventory, StoreDocuments}
