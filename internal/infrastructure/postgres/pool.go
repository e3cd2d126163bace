package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Polizas-api/pkg/config"
)

// Límites del pool. La API sirve a agencias pequeñas: el tráfico lo dominan
// consultas de pólizas y el scan diario de vencimientos, así que un pool
// modesto alcanza y evita agotar los slots del plan gestionado de PostgreSQL.
const (
	poolMaxConns        = 10
	poolMinConns        = 2
	poolConnLifetime    = time.Hour
	poolConnIdleTime    = 30 * time.Minute
	poolHealthCheckTick = time.Minute
)

// NewPool abre y verifica el pool de conexiones a PostgreSQL.
//
// Si DATABASE_URL está definido se usa tal cual; si no, el DSN se arma desde
// DB_HOST, DB_PORT, etc. En ambos casos el host se fija a su IPv4 cuando se
// puede resolver: los contenedores suelen carecer de ruta IPv6 y algunos
// proveedores gestionados publican solo registros AAAA.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	if cfg.DatabaseURL != "" {
		dsn = pinHostToIPv4(cfg.DatabaseURL)
	} else if ipv4, err := lookupIPv4(cfg.Host); err == nil {
		pinned := cfg
		pinned.Host = ipv4
		dsn = pinned.DSN()
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolCfg.MaxConns = poolMaxConns
	poolCfg.MinConns = poolMinConns
	poolCfg.MaxConnLifetime = poolConnLifetime
	poolCfg.MaxConnIdleTime = poolConnIdleTime
	poolCfg.HealthCheckPeriod = poolHealthCheckTick

	// El dial vuelve a resolver por si el DNS cambió entre el arranque y la conexión.
	poolCfg.ConnConfig.DialFunc = dialIPv4First

	// Los importes de pólizas viajan como NUMERIC; registrar el codec de
	// shopspring/decimal en cada conexión del pool.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialIPv4First intenta conectar por IPv4; si el host no tiene A record cae al dial normal.
func dialIPv4First(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := lookupIPv4(host)
	if err != nil {
		return dialer.DialContext(ctx, network, addr)
	}
	return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// lookupIPv4 resuelve host a una dirección IPv4. Prueba el resolver del sistema
// y, si este solo devuelve IPv6 (típico del DNS interno de Docker), reintenta
// contra un DNS público.
func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("host %q es IPv6", host)
	}
	if ip, ok := firstIPv4(net.LookupIP(host)); ok {
		return ip, nil
	}
	fallback := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	if ip, ok := firstIPv4(fallback.LookupIP(context.Background(), "ip4", host)); ok {
		return ip, nil
	}
	return "", fmt.Errorf("host %q no tiene IPv4", host)
}

func firstIPv4(ips []net.IP, err error) (string, bool) {
	if err != nil {
		return "", false
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), true
		}
	}
	return "", false
}

// pinHostToIPv4 sustituye el hostname de un DATABASE_URL por su IPv4.
// Si no se puede resolver, devuelve la URL original sin modificar.
func pinHostToIPv4(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	ipv4, err := lookupIPv4(u.Hostname())
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
