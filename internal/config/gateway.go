package config

import (
	"fmt"
	"strings"
	"time"
)

type Gateway struct {
	URL            string `env:"SUPABASE_URL,required,notEmpty"`
	AnonKey        string `env:"SUPABASE_ANON_KEY,required,notEmpty"`
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY,required,notEmpty"`

	Driver    GatewayDriver `env:"GATEWAY_DRIVER" envDefault:"REST"`
	Timeout   time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"15s"`
	JWTSecret string        `env:"SUPABASE_JWT_SECRET"`
	Outbox    bool          `env:"GATEWAY_OUTBOX" envDefault:"false"`
}

// GatewayDriver selects how the database gateway is reached.
type GatewayDriver uint8

const (
	// GatewayDriverREST talks to the hosted REST and auth APIs.
	GatewayDriverREST GatewayDriver = iota
	// GatewayDriverPostgres connects to the database directly.
	GatewayDriverPostgres
)

// String returns the string representation of the gateway driver.
func (d GatewayDriver) String() string {
	return []string{"REST", "POSTGRES"}[d]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *GatewayDriver) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "REST":
		*d = GatewayDriverREST
	case "POSTGRES":
		*d = GatewayDriverPostgres
	default:
		return fmt.Errorf("unknown gateway driver: %s", text)
	}
	return nil
}

func (d GatewayDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
