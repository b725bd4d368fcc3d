package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type DatabasePostgres struct {
	Provider    DatabaseProvider  `json:"provider" yaml:"provider"`
	Host        string            `json:"host" yaml:"host"`
	Port        int               `json:"port,omitempty" yaml:"port,omitempty"`
	User        string            `json:"user,omitempty" yaml:"user,omitempty"`
	Password    string            `json:"password,omitempty" yaml:"password,omitempty"`
	Database    string            `json:"database" yaml:"database"`
	SSLMode     string            `json:"sslmode,omitempty" yaml:"sslmode,omitempty"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	AutoMigrate bool              `json:"auto_migrate,omitempty" yaml:"auto_migrate,omitempty"`
}

func (d *DatabasePostgres) GetProvider() DatabaseProvider {
	return DatabaseProviderPostgres
}

func (d *DatabasePostgres) GetDriver() string {
	return "pgx"
}

func (d *DatabasePostgres) GetAutoMigrate() bool {
	return d.AutoMigrate
}

func (d *DatabasePostgres) GetUri() string {
	return d.buildUrl().String()
}

// GetDsn gets the Data Source Name
func (d *DatabasePostgres) GetDsn() string {
	return d.buildUrl().String()
}

func (d *DatabasePostgres) GetPlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (d *DatabasePostgres) buildUrl() *url.URL {
	u := &url.URL{
		Scheme: "postgres",
		Path:   d.Database,
	}

	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}

	host := "localhost"
	if d.Host != "" {
		host = d.Host
	}

	port := 5432
	if d.Port != 0 {
		port = d.Port
	}

	u.Host = fmt.Sprintf("%s:%d", host, port)

	params := url.Values{}
	sslmode := "disable"
	if d.SSLMode != "" {
		sslmode = d.SSLMode
	}
	params.Set("sslmode", sslmode)

	if len(d.Params) > 0 {
		keys := make([]string, 0, len(d.Params))
		for k := range d.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == "" {
				continue
			}
			params.Set(k, d.Params[k])
		}
	}

	u.RawQuery = strings.TrimPrefix(params.Encode(), "&")
	return u
}

func (d *DatabasePostgres) Validate(vc *common.ValidationContext) error {
	result := &multierror.Error{}

	if d.Host == "" {
		result = multierror.Append(result, vc.NewErrorForField("host", "host must be specified"))
	}

	if d.Database == "" {
		result = multierror.Append(result, vc.NewErrorForField("database", "database must be specified"))
	}

	if d.Port < 0 || d.Port > 65535 {
		result = multierror.Append(result, vc.NewErrorfForField("port", "port must be between 1 and 65535, got %d", d.Port))
	}

	return result.ErrorOrNil()
}
