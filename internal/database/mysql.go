package database

import (
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"restopos-api/internal/config"
)

// BuildMySQLDSN turns the database config into a go-sql-driver DSN.
// parseTime is always on so DATETIME columns scan into time.Time.
func BuildMySQLDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", fmt.Errorf("invalid database config: host, port, user, and name are required")
	}

	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, c.Port)
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = 5 * time.Second

	return mc.FormatDSN(), nil
}
