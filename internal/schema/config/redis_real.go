package config

import (
	"github.com/redis/go-redis/v9"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type RedisReal struct {
	Provider RedisProvider `json:"provider" yaml:"provider"`

	// The network type, either tcp or unix.
	// Default is tcp.
	Network string `json:"network,omitempty" yaml:"network,omitempty"`

	// host:port address.
	Address string `json:"address" yaml:"address"`

	// Protocol 2 or 3. Use the version to negotiate RESP version with redis-server.
	// Default is 3.
	Protocol int `json:"protocol,omitempty" yaml:"protocol,omitempty"`

	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Database to be selected after connecting to the server.
	DB int `json:"db,omitempty" yaml:"db,omitempty"`
}

func (r *RedisReal) GetProvider() RedisProvider {
	return RedisProviderRedis
}

func (r *RedisReal) Validate(vc *common.ValidationContext) error {
	if r.Address == "" {
		return vc.NewErrorForField("address", "address must be specified")
	}

	if r.Network != "" && r.Network != "tcp" && r.Network != "unix" {
		return vc.NewErrorfForField("network", "network must be tcp or unix, got '%s'", r.Network)
	}

	if r.Protocol != 0 && r.Protocol != 2 && r.Protocol != 3 {
		return vc.NewErrorfForField("protocol", "protocol must be 2 or 3, got %d", r.Protocol)
	}

	return nil
}

// ToRedisOptions converts the configuration to go-redis client options.
func (r *RedisReal) ToRedisOptions() *redis.Options {
	network := r.Network
	if network == "" {
		network = "tcp"
	}

	return &redis.Options{
		Network:  network,
		Addr:     r.Address,
		Protocol: r.Protocol,
		Username: r.Username,
		Password: r.Password,
		DB:       r.DB,
	}
}
