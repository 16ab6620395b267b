// Package redis contains the Redis implementation of the remote record
// gateway: a per-user document collection with an index ordered by creation
// time, which is all the sync layer asks of the remote side.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redigo "github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
)

// GatewayConfig configures the remote gateway connection.
type GatewayConfig struct {
	Addr         string // empty means no remote configured
	KeyPrefix    string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxIdle      int
	IdleTimeout  time.Duration
}

func (c *GatewayConfig) withDefaults() GatewayConfig {
	cfg := *c
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "agrimetrics"
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 3
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 4 * time.Minute
	}
	return cfg
}

// Gateway implements secondary.RemoteGateway and secondary.ConnectivityProbe
// against Redis. Records live in a hash per (user, collection); a sorted set
// scored by creation millis provides the newest-first index.
type Gateway struct {
	pool     *redigo.Pool
	prefix   string
	identity func() string
	online   func() bool
	log      zerolog.Logger
}

// NewGateway creates the gateway. identity supplies the current user id;
// online reports the connectivity monitor's last observed state. An empty
// address leaves the client uninitialized, so Available is always false.
func NewGateway(cfg GatewayConfig, identity func() string, online func() bool, log zerolog.Logger) *Gateway {
	g := &Gateway{
		identity: identity,
		online:   online,
		log:      log.With().Str("component", "remote").Logger(),
	}
	if cfg.Addr == "" {
		return g
	}
	c := cfg.withDefaults()
	g.prefix = c.KeyPrefix
	g.pool = &redigo.Pool{
		MaxIdle:     c.MaxIdle,
		IdleTimeout: c.IdleTimeout,
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", c.Addr,
				redigo.DialConnectTimeout(c.DialTimeout),
				redigo.DialReadTimeout(c.ReadTimeout),
				redigo.DialWriteTimeout(c.WriteTimeout),
			)
		},
		TestOnBorrow: func(conn redigo.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := conn.Do("PING")
			return err
		},
	}
	return g
}

// Available reports whether the client is initialized, a user identity is
// established, and the device last observed itself online.
func (g *Gateway) Available(ctx context.Context) bool {
	if g.pool == nil {
		return false
	}
	if g.identity == nil {
		return false
	}
	if id := g.identity(); id == "" || id == record.AnonymousUser {
		return false
	}
	if g.online != nil && !g.online() {
		return false
	}
	return true
}

// FetchRecent returns up to limit records for the user, newest-first.
func (g *Gateway) FetchRecent(ctx context.Context, collection, userID string, limit int) ([]*record.Record, error) {
	if !g.Available(ctx) {
		return nil, fmt.Errorf("fetch recent %s: %w", collection, record.ErrRemoteUnavailable)
	}
	if limit <= 0 {
		limit = 1
	}

	conn, err := g.pool.GetContext(ctx)
	if err != nil {
		return nil, requestErr("fetch recent "+collection, err)
	}
	defer conn.Close()

	ids, err := redigo.Strings(conn.Do("ZREVRANGE", g.indexKey(collection, userID), 0, limit-1))
	if err != nil {
		return nil, requestErr("fetch recent "+collection, err)
	}
	if len(ids) == 0 {
		return []*record.Record{}, nil
	}

	args := redigo.Args{}.Add(g.dataKey(collection, userID)).AddFlat(ids)
	values, err := redigo.Values(conn.Do("HMGET", args...))
	if err != nil {
		return nil, requestErr("fetch recent "+collection, err)
	}

	records := make([]*record.Record, 0, len(values))
	for i, v := range values {
		if v == nil {
			continue // index entry without a document; a delete landed in between
		}
		data, err := redigo.Bytes(v, nil)
		if err != nil {
			return nil, requestErr("fetch recent "+collection, err)
		}
		var rec record.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			g.log.Warn().Str("collection", collection).Str("id", ids[i]).Err(err).
				Msg("unparsable remote record, skipping")
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}

// Upsert writes or merges one record by id.
func (g *Gateway) Upsert(ctx context.Context, collection string, rec *record.Record) error {
	if !g.Available(ctx) {
		return fmt.Errorf("upsert %s/%s: %w", collection, rec.ID, record.ErrRemoteUnavailable)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return requestErr("upsert "+collection+"/"+rec.ID, err)
	}

	conn, err := g.pool.GetContext(ctx)
	if err != nil {
		return requestErr("upsert "+collection+"/"+rec.ID, err)
	}
	defer conn.Close()

	score := rec.CreatedAtTime().UnixMilli()
	conn.Send("MULTI")
	conn.Send("HSET", g.dataKey(collection, rec.UserID), rec.ID, data)
	conn.Send("ZADD", g.indexKey(collection, rec.UserID), score, rec.ID)
	if _, err := conn.Do("EXEC"); err != nil {
		return requestErr("upsert "+collection+"/"+rec.ID, err)
	}
	return nil
}

// Delete removes one record by id for the current user. Best-effort; the
// caller logs and swallows failures.
func (g *Gateway) Delete(ctx context.Context, collection string, id string) error {
	if !g.Available(ctx) {
		return fmt.Errorf("delete %s/%s: %w", collection, id, record.ErrRemoteUnavailable)
	}

	conn, err := g.pool.GetContext(ctx)
	if err != nil {
		return requestErr("delete "+collection+"/"+id, err)
	}
	defer conn.Close()

	userID := g.identity()
	conn.Send("MULTI")
	conn.Send("HDEL", g.dataKey(collection, userID), id)
	conn.Send("ZREM", g.indexKey(collection, userID), id)
	if _, err := conn.Do("EXEC"); err != nil {
		return requestErr("delete "+collection+"/"+id, err)
	}
	return nil
}

// Ping checks reachability of the remote store. Used by the connectivity
// monitor; it only needs a configured client, not a session.
func (g *Gateway) Ping(ctx context.Context) error {
	if g.pool == nil {
		return fmt.Errorf("ping: %w", record.ErrRemoteUnavailable)
	}
	conn, err := g.pool.GetContext(ctx)
	if err != nil {
		return requestErr("ping", err)
	}
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		return requestErr("ping", err)
	}
	return nil
}

// Close releases the connection pool.
func (g *Gateway) Close() error {
	if g.pool == nil {
		return nil
	}
	return g.pool.Close()
}

func (g *Gateway) dataKey(collection, userID string) string {
	return g.prefix + ":" + collection + ":" + userID + ":data"
}

func (g *Gateway) indexKey(collection, userID string) string {
	return g.prefix + ":" + collection + ":" + userID + ":by-created"
}

func requestErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, record.ErrRemoteRequestFailed)
}
