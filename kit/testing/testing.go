package testing

import "context"

type MySQLContainer interface {
	GetURI() string
	Terminate(context.Context) error
}

type RedisContainer interface {
	GetURI() string
	Terminate(context.Context) error
}
