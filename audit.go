package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hoisie/redis"
	_ "github.com/lib/pq"
)

const AUDIT_LOG_OUTPUT_BUFFER = 1024

type AuditLogger interface {
	Run()
	Write(mesg *AuditMesg)
}

type AuditMesg struct {
	RemoteAddr string    `json:"remoteaddr"`
	Query      string    `json:"query"`
	Depth      int       `json:"depth"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewAuditMessage(remoteAddr string, query string, depth int) *AuditMesg {
	return &AuditMesg{
		RemoteAddr: remoteAddr,
		Query:      query,
		Depth:      depth,
		Timestamp:  time.Now(),
	}
}

func NewAuditLogger(as AuditSettings, rs RedisSettings, ps PostgresqlSettings) (AuditLogger, error) {
	if !as.Enable {
		return nil, nil
	}
	switch as.Backend {
	case "redis":
		return NewRedisAuditLogger(rs, as.Expire), nil
	case "postgresql":
		return NewPostgresqlAuditLogger(ps, as.Expire)
	default:
		return nil, fmt.Errorf("invalid audit backend %q", as.Backend)
	}
}

type RedisAuditLogger struct {
	backend *redis.Client
	mesgs   chan *AuditMesg
	expire  int64
}

func NewRedisAuditLogger(rs RedisSettings, expire int64) AuditLogger {
	rc := &redis.Client{Addr: rs.Addr(), Db: rs.DB, Password: rs.Password}
	auditLogger := &RedisAuditLogger{
		backend: rc,
		mesgs:   make(chan *AuditMesg, AUDIT_LOG_OUTPUT_BUFFER),
		expire:  expire,
	}
	go auditLogger.Run()
	return auditLogger
}

func auditKey(t time.Time) string {
	return fmt.Sprintf("audit-%s:00", t.Format("2006-01-02T15"))
}

func (rl *RedisAuditLogger) Run() {
	for mesg := range rl.mesgs {
		jsonMesg, err := json.Marshal(mesg)
		if err != nil {
			logger.Error("Can't write to redis audit log: %v", err)
			continue
		}
		redisKey := auditKey(mesg.Timestamp)
		if err := rl.backend.Rpush(redisKey, jsonMesg); err != nil {
			logger.Error("Can't write to redis audit log: %v", err)
			continue
		}
		if _, err := rl.backend.Expire(redisKey, rl.expire); err != nil {
			logger.Error("Can't set expiration for redis audit log: %v", err)
		}
	}
}

func (rl *RedisAuditLogger) Write(mesg *AuditMesg) {
	rl.mesgs <- mesg
}

type PostgresqlAuditLogger struct {
	backend *sql.DB
	mesgs   chan *AuditMesg
	expire  int64
}

func (ps PostgresqlSettings) ConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s sslcert=%s sslkey=%s sslrootcert=%s",
		ps.Host, ps.Port,
		ps.User, ps.Password,
		ps.DB, ps.Sslmode,
		ps.Sslcert, ps.Sslkey,
		ps.Sslrootcert,
	)
}

func NewPostgresqlAuditLogger(ps PostgresqlSettings, expire int64) (AuditLogger, error) {
	pc, err := sql.Open("postgres", ps.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("connect to audit log postgresql: %w", err)
	}
	_, err = pc.Exec(`
                CREATE TABLE IF NOT EXISTS audit (
                        id BIGSERIAL NOT NULL,
                        remoteaddr TEXT,
                        query TEXT,
                        depth INTEGER,
                        timestamp TIMESTAMP
                )
        `)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}
	auditLogger := &PostgresqlAuditLogger{
		backend: pc,
		mesgs:   make(chan *AuditMesg, AUDIT_LOG_OUTPUT_BUFFER),
		expire:  expire,
	}
	go auditLogger.Run()
	go auditLogger.Expire()
	return auditLogger, nil
}

func (pl *PostgresqlAuditLogger) Run() {
	for mesg := range pl.mesgs {
		_, err := pl.backend.Exec(`INSERT INTO audit (remoteaddr, query, depth, timestamp) VALUES ($1, $2, $3, $4)`,
			mesg.RemoteAddr, mesg.Query, mesg.Depth, mesg.Timestamp,
		)
		if err != nil {
			logger.Error("Can't write to postgresql audit log: %v", err)
		}
	}
}

func (pl *PostgresqlAuditLogger) Write(mesg *AuditMesg) {
	pl.mesgs <- mesg
}

func (pl *PostgresqlAuditLogger) Expire() {
	if pl.expire <= 0 {
		return
	}
	for {
		expireTime := time.Now().Add(time.Duration(-pl.expire) * time.Second)
		_, err := pl.backend.Exec(`DELETE FROM audit WHERE timestamp < $1`, expireTime)
		if err != nil {
			logger.Error("Can't expire postgresql audit log: %v", err)
		}
		time.Sleep(time.Duration(pl.expire) * time.Second / 2)
	}
}
