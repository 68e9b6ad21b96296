package curly

import (
	"time"

	"github.com/itsatony/go-curly/internal"
)

// Default delimiters
const (
	DefaultOpenDelim  = internal.DefaultOpenDelim
	DefaultCloseDelim = internal.DefaultCloseDelim
)

// Error code constants for categorization
const (
	ErrCodeSyntax          = "CURLY_SYNTAX"
	ErrCodeVariable        = "CURLY_VARIABLE"
	ErrCodeFunctionMissing = "CURLY_FUNCTION_MISSING"
	ErrCodeFunction        = "CURLY_FUNCTION"
	ErrCodeDelimiter       = "CURLY_DELIMITER"
	ErrCodeConfig          = "CURLY_CONFIG"
	ErrCodeStorage         = "CURLY_STORAGE"
)

// Error message constants
const (
	ErrMsgSyntax                 = "template syntax error"
	ErrMsgVariableNotFound       = "variable not found"
	ErrMsgFunctionNotImplemented = "function not implemented"
	ErrMsgFunctionFailed         = "function call failed"
	ErrMsgRenderFailed           = "template rendering failed"
	ErrMsgInvalidDelimiters      = "invalid delimiters"
	ErrMsgNoStore                = "no template store configured"
	ErrMsgReadConfig             = "failed to read config file"
	ErrMsgParseConfig            = "failed to parse config"
)

// Metadata key constants
const (
	MetaKeyLine       = "line"
	MetaKeyColumn     = "column"
	MetaKeyOffset     = "offset"
	MetaKeyKind       = "kind"
	MetaKeyName       = "name"
	MetaKeySuggestion = "suggestion"
	MetaKeyOpenDelim  = "open_delim"
	MetaKeyCloseDelim = "close_delim"
	MetaKeyPath       = "path"
	MetaKeyTemplate   = "template_name"
	MetaKeyDriver     = "driver"
)

// Log message constants
const (
	LogMsgEngineCreated    = "engine created"
	LogMsgEngineCloned     = "engine cloned"
	LogMsgDelimitersSet    = "delimiters changed"
	LogMsgRenderFailed     = "render failed"
	LogMsgRenderStored     = "rendering stored template"
	LogMsgStoreOpened      = "template store opened"
	LogMsgStoreMigrated    = "template store migrated"
	LogMsgTemplateSaved    = "template saved"
	LogMsgTemplateDeleted  = "template deleted"
	LogMsgNilFunction      = "nil function ignored"
	LogFieldOpenDelim      = "open"
	LogFieldCloseDelim     = "close"
	LogFieldTemplate       = "template"
	LogFieldFunction       = "function"
	LogFieldDriver         = "driver"
	LogFieldVariableCount  = "variables"
	LogFieldFunctionCount  = "functions"
	LogFieldTemplateLength = "length"
	LogFieldSchemaVersion  = "schema_version"
	LogFieldTable          = "table"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
	StorageDriverNameSQLite     = "sqlite"
)

// Filesystem store constants
const (
	FilesystemTemplateExt     = ".tmpl"
	FilesystemDirPermissions  = 0o755
	FilesystemFilePermissions = 0o644
)

// SQL store defaults
const (
	SQLDefaultTableName       = "curly_templates"
	SQLDefaultMaxOpenConns    = 10
	SQLDefaultMaxIdleConns    = 2
	SQLDefaultConnMaxLifetime = 5 * time.Minute
	SQLDefaultQueryTimeout    = 30 * time.Second
	SQLDriverPostgres         = "postgres"
)

// Version of the curly module
const Version = "0.1.0"
