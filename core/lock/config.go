package lock

// Config holds configuration for the Redis run lock.
type Config struct {
	// RedisAddr is host:port of the Redis server. Empty disables locking.
	RedisAddr string `mapstructure:"redis_addr" default:""`
	// RedisPassword is the Redis AUTH password.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the logical Redis database index.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// Key is the lock key shared by all runs against one store.
	Key string `mapstructure:"key" default:"mango-sync:run"`
	// TTLSeconds is how long the lock lives if a run dies without releasing it.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"900"`
}

// Enabled reports whether a Redis address is configured.
func (c Config) Enabled() bool {
	return c.RedisAddr != ""
}
