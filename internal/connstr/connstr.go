// Package connstr parses the two connection forms SQLDriverConnect and
// SQLConnect accept: a "Key=Value;" attribute
// string, and a bare data source name that is looked up in an odbc.ini
// file. It is grounded on alexbrainman/odbc's connector.go key/value
// splitting (used there to drive the ODBC driver manager's own
// SQLDriverConnect) generalized into parsing the attributes Furball
// itself interprets, since there is no driver manager underneath this
// layer to hand the raw string to.
package connstr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params is the parsed, normalized connection configuration internal/conn
// needs to dial a TDS session.
type Params struct {
	Server                string
	Port                  int
	Database              string
	User                  string
	Password              string
	TrustServerCertificate bool
}

const defaultPort = 1433

// ParseConnectionString parses a "Key=Value;Key2=Value2" string.
// Keys are matched case-insensitively; recognized keys are DRIVER
// (ignored — Furball does not chain-load another driver), SERVER (with
// an optional ",port" suffix), DATABASE / "INITIAL CATALOG", UID /
// "USER ID", PWD / PASSWORD, and TRUSTSERVERCERTIFICATE. DSN is handled
// by ResolveDSN, not here; a caller that sees a DSN key should call that
// instead.
func ParseConnectionString(s string) (Params, error) {
	p := Params{Port: defaultPort}
	for _, part := range splitAttrs(s) {
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return Params{}, errors.Errorf("connstr: malformed attribute %q", part)
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		switch key {
		case "DRIVER":
			// no-op: Furball is the driver, there is nothing further to chain-load.
		case "SERVER", "ADDRESS", "ADDR", "NETWORK ADDRESS":
			server, port, err := splitServer(val)
			if err != nil {
				return Params{}, err
			}
			p.Server = server
			if port != 0 {
				p.Port = port
			}
		case "DATABASE", "INITIAL CATALOG":
			p.Database = val
		case "UID", "USER ID", "USER":
			p.User = val
		case "PWD", "PASSWORD":
			p.Password = val
		case "TRUSTSERVERCERTIFICATE":
			b, err := parseYesNo(val)
			if err != nil {
				return Params{}, errors.Wrapf(err, "connstr: TrustServerCertificate value %q", val)
			}
			p.TrustServerCertificate = b
		default:
			// Unrecognized keys are accepted and ignored, matching the ODBC
			// convention that a driver tolerates attributes meant for other
			// drivers or the driver manager itself.
		}
	}
	if p.Server == "" {
		return Params{}, errors.New("connstr: SERVER is required")
	}
	return p, nil
}

// splitAttrs splits on ';' while respecting '{...}'-braced values, the
// ODBC convention for values that themselves contain a semicolon.
func splitAttrs(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func splitServer(val string) (server string, port int, err error) {
	val = strings.Trim(val, "{}")
	if idx := strings.LastIndex(val, ","); idx != -1 {
		server = val[:idx]
		port, err = strconv.Atoi(val[idx+1:])
		if err != nil {
			return "", 0, errors.Wrapf(err, "connstr: invalid port in SERVER=%q", val)
		}
		return server, port, nil
	}
	return val, 0, nil
}

// parseYesNo reads a boolean attribute value: yes/true/1 or no/false/0,
// case-insensitively.
func parseYesNo(val string) (bool, error) {
	switch strings.ToLower(val) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, errors.Errorf("not a yes/no value: %q", val)
}

// ResolveDSN looks the named data source up in an odbc.ini file:
// $HOME/.odbc.ini is checked before /etc/odbc.ini, and an explicit
// UID/PWD on the call overrides whatever the DSN section carries.
// overrideUser/overridePassword may be empty, meaning "use whatever the
// DSN section has".
func ResolveDSN(dsn, overrideUser, overridePassword string) (Params, error) {
	path, section, err := findDSNSection(dsn)
	if err != nil {
		return Params{}, err
	}
	p, err := parseINISection(path, section)
	if err != nil {
		return Params{}, err
	}
	if overrideUser != "" {
		p.User = overrideUser
	}
	if overridePassword != "" {
		p.Password = overridePassword
	}
	if p.Server == "" {
		return Params{}, fmt.Errorf("connstr: DSN %q has no Server entry in %s", dsn, path)
	}
	return p, nil
}

func parseINISection(path, section string) (Params, error) {
	lines, err := readLines(path)
	if err != nil {
		return Params{}, err
	}
	p := Params{Port: defaultPort}
	inSection := false
	wantHeader := "[" + strings.ToLower(section) + "]"
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inSection = strings.ToLower(trimmed) == wantHeader
			continue
		}
		if !inSection {
			continue
		}
		kv := strings.SplitN(trimmed, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		switch key {
		case "SERVER", "SERVERNAME", "ADDRESS":
			server, port, err := splitServer(val)
			if err != nil {
				return Params{}, err
			}
			p.Server = server
			if port != 0 {
				p.Port = port
			}
		case "PORT":
			port, err := strconv.Atoi(val)
			if err != nil {
				return Params{}, errors.Wrapf(err, "connstr: invalid Port in %s", path)
			}
			p.Port = port
		case "DATABASE":
			p.Database = val
		case "UID", "USER":
			p.User = val
		case "PWD", "PASSWORD":
			p.Password = val
		case "TRUSTSERVERCERTIFICATE":
			b, err := parseYesNo(val)
			if err != nil {
				return Params{}, errors.Wrapf(err, "connstr: invalid TrustServerCertificate in %s", path)
			}
			p.TrustServerCertificate = b
		}
	}
	return p, nil
}
