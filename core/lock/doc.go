// Package lock keeps overlapping sync runs from racing on the same phone number.
//
// When lock.redis_addr is set, a run must obtain a Redis lock (bsm/redislock)
// before it touches the store. Without an address the locker is a no-op and
// runs are expected to be serialized by the scheduler.
package lock
