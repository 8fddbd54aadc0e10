package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldUsername  = "username"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldBackend   = "backend"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentShell    = "shell"
	ComponentStorage  = "storage"
	ComponentSnapshot = "snapshot"
	ComponentBackend  = "backend"
	ComponentTaxonomy = "taxonomy"
)

// Operations defines standard operation names
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpAdd      = "add"
	OpList     = "list"
	OpSummary  = "summary"
	OpSave     = "save"
	OpLoad     = "load"
	OpLogout   = "logout"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
