package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// DSNValue builds the MySQL DSN, preferring an explicit dsn entry.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=True&loc=%s",
		c.User,
		c.Password,
		net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		c.Name,
		c.Charset,
		neturl.QueryEscape(c.Loc),
	)
}

// URLValue builds the redis:// URL, preferring an explicit url entry.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		return v
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}

	u := neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Username != "" || c.Password != "" {
		u.User = neturl.UserPassword(c.Username, c.Password)
	}
	return u.String()
}
