package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	IdentityKey  ContextKey = "identity"
	SessionKey   ContextKey = "session"
	OrgCtxKey    ContextKey = "orgContext"
	PageContext  ContextKey = "pageContext"
	ParamsKey    ContextKey = "params"
	AppKey       ContextKey = "app"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	AllNavItems  ContextKey = "allNavItems"
	ShellKey     ContextKey = "shell"
	CSRFFieldKey ContextKey = "csrfField"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
