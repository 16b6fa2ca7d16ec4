package blogshell

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Environment variables for the hosted MySQL content store.
const (
	EnvMySQLHost     = "COSMOS_MYSQL_HOST"
	EnvMySQLPort     = "COSMOS_MYSQL_PORT"
	EnvMySQLUser     = "COSMOS_MYSQL_USERNAME"
	EnvMySQLPassword = "COSMOS_MYSQL_PASSWORD"
	EnvMySQLDatabase = "COSMOS_MYSQL_DATABASE"
	EnvMySQLSSL      = "COSMOS_MYSQL_SSL"
	EnvMySQLCACert   = "COSMOS_MYSQL_CA_CERT"
	EnvMySQLPoolMax  = "COSMOS_MYSQL_POOL_MAX"
)

const mysqlTLSConfigName = "blogshell"

// MySQLSettings is a MySQL connection derived from the environment.
type MySQLSettings struct {
	DSN      string
	MaxConns int
}

// HasMySQLEnv reports whether the MySQL host variable is set.
func HasMySQLEnv(env Env) bool {
	return env.lookup(EnvMySQLHost) != ""
}

// MySQLFromEnv builds a MySQL DSN from the COSMOS_MYSQL_* variables. TLS is
// on unless COSMOS_MYSQL_SSL is skip, disabled, false or off. The CA cert
// may be given inline as PEM or as a file path.
func MySQLFromEnv(env Env) (MySQLSettings, error) {
	if env == nil {
		env = os.Getenv
	}
	var missing []string
	required := func(key string) string {
		v := env.lookup(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	host := required(EnvMySQLHost)
	portRaw := required(EnvMySQLPort)
	user := required(EnvMySQLUser)
	password := required(EnvMySQLPassword)
	database := required(EnvMySQLDatabase)
	if len(missing) > 0 {
		return MySQLSettings{}, fmt.Errorf("blogshell: missing MySQL environment variables: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil {
		return MySQLSettings{}, fmt.Errorf("blogshell: expected %s to be a number, received %q", EnvMySQLPort, portRaw)
	}

	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = database
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	if sslEnabled(env.lookup(EnvMySQLSSL)) {
		tlsName, err := registerTLS(env.lookup(EnvMySQLCACert), host)
		if err != nil {
			return MySQLSettings{}, err
		}
		cfg.TLSConfig = tlsName
	}

	maxConns := 10
	if raw := env.lookup(EnvMySQLPoolMax); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxConns = n
		}
	}
	return MySQLSettings{DSN: cfg.FormatDSN(), MaxConns: maxConns}, nil
}

func sslEnabled(mode string) bool {
	switch strings.ToLower(mode) {
	case "skip", "disabled", "false", "off":
		return false
	}
	return true
}

// registerTLS returns the driver TLS config name to use. Without a CA cert
// the system roots are used.
func registerTLS(caCert, host string) (string, error) {
	if caCert == "" {
		return "true", nil
	}
	pemData, err := readCACert(caCert)
	if err != nil {
		return "", err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return "", errors.New("blogshell: no certificates found in " + EnvMySQLCACert)
	}
	if err := mysql.RegisterTLSConfig(mysqlTLSConfigName, &tls.Config{
		RootCAs:    pool,
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}); err != nil {
		return "", fmt.Errorf("blogshell: register mysql tls config: %w", err)
	}
	return mysqlTLSConfigName, nil
}

func readCACert(value string) ([]byte, error) {
	if strings.Contains(value, "BEGIN CERTIFICATE") {
		return []byte(value), nil
	}
	path := value
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(wd, path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blogshell: read %s: %w", EnvMySQLCACert, err)
	}
	return b, nil
}
