package cache

import (
	"github.com/go-redis/redis/v8"
)

// Lua scripts for Redis operations
var (
	setHashFieldWithTTLScript *redis.Script
)

func init() {
	// store one hash field and refresh the hash expiry in a single atomic step,
	// so a cached page never exists without a TTL.
	setHashFieldWithTTLScript = redis.NewScript(`
		local ttl = tonumber(ARGV[3])
		if ttl == nil or ttl <= 0 then
			return redis.error_reply('invalid ttl')
		end
		redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
		redis.call('EXPIRE', KEYS[1], ttl)
		return 1
	`)
}
