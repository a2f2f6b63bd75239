package cookie

import (
	"net/http"
	"slices"
	"strings"
)

type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HttpOnly = httpOnly
	}
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithSecrets enables signing. Empty entries are dropped.
func WithSecrets(secrets ...string) ManagerOption {
	return func(m *Manager) {
		for _, s := range secrets {
			if s = strings.TrimSpace(s); s != "" {
				m.secrets = append(m.secrets, s)
			}
		}
	}
}

// WithDefaults applies cookie options to every cookie the manager writes.
func WithDefaults(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.defaults = applyOptions(m.defaults, opts)
	}
}

// applyOptions copies base and applies opts to the copy.
func applyOptions(base Options, opts []Option) Options {
	result := base
	for _, opt := range slices.Clip(opts) {
		if opt != nil {
			opt(&result)
		}
	}
	return result
}
