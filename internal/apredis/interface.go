package apredis

import (
	"time"

	v9 "github.com/redis/go-redis/v9"
)

// Client is the redis client used by the lifecycle services. It is accepted anywhere go-redis or asynq expects a
// universal client.
//
//go:generate mockgen -source=./interface.go -destination=./mock/redis.go -package=mock
type Client interface {
	v9.UniversalClient
	WithTimeout(timeout time.Duration) *v9.Client
	Conn() *v9.Conn
	Options() *v9.Options
}

var _ Client = (*v9.Client)(nil)
