package gui

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
)

const defaultSqliteFile = "local-teambuilder.db"

// connectionFields returns the form fields the wizard asks for, per database type.
func connectionFields(database string) []string {
	if database == "sqlite" {
		return []string{"File Name"}
	}
	return []string{"Username", "Password", "Host", "Port", "Database"}
}

// parseConnectionString pre-fills the wizard form from an existing connection string. Strings
// that can't be parsed leave the form empty (or with the default sqlite file).
func parseConnectionString(database, connectionString string) []string {
	values := make([]string, len(connectionFields(database)))

	switch database {
	case "sqlite":
		values[0] = defaultSqliteFile
		if strings.HasPrefix(connectionString, "file:") {
			file, _, _ := strings.Cut(strings.TrimPrefix(connectionString, "file:"), "?")
			if file != "" {
				values[0] = file
			}
		}
	case "postgres":
		if !strings.HasPrefix(connectionString, "postgres:") {
			break
		}
		conConf, err := pgx.ParseConfig(connectionString)
		if err != nil {
			break
		}
		values[0] = conConf.User
		values[1] = conConf.Password
		values[2] = conConf.Host
		values[3] = strconv.FormatUint(uint64(conConf.Port), 10)
		values[4] = conConf.Database
	case "mysql":
		if !strings.Contains(connectionString, "@tcp(") {
			break
		}
		conConf, err := mysql.ParseDSN(connectionString)
		if err != nil {
			break
		}
		host, port, err := net.SplitHostPort(conConf.Addr)
		if err != nil {
			break
		}
		values[0] = conConf.User
		values[1] = conConf.Passwd
		values[2] = host
		values[3] = port
		values[4] = conConf.DBName
	}

	return values
}

// buildConnectionString turns the wizard form values into a connection string.
func buildConnectionString(database string, values []string) (string, error) {
	fields := connectionFields(database)
	if len(values) != len(fields) {
		return "", fmt.Errorf("expected %d values, got %d", len(fields), len(values))
	}

	errs := []string{}
	for i, field := range fields {
		if values[i] == "" {
			errs = append(errs, fmt.Sprintf("%s: is required", field))
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("%s", strings.Join(errs, "\n"))
	}

	if database == "sqlite" {
		return fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)", values[0]), nil
	}

	port, err := strconv.Atoi(values[3])
	if err != nil {
		return "", fmt.Errorf("Port: input is invalid")
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("Port: input is out of range (1 - 65535)")
	}
	addr := net.JoinHostPort(values[2], strconv.Itoa(port))

	switch database {
	case "postgres":
		uri := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(values[0], values[1]),
			Host:   addr,
			Path:   "/" + values[4],
		}
		return uri.String(), nil
	case "mysql":
		conConf := mysql.NewConfig()
		conConf.User = values[0]
		conConf.Passwd = values[1]
		conConf.Net = "tcp"
		conConf.Addr = addr
		conConf.DBName = values[4]
		conConf.ParseTime = true
		return conConf.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database type %q", database)
	}
}
