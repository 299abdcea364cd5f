package db

// PasswordSource supplies the database password.
type PasswordSource interface {
	Password() (string, error)
}

// StaticPassword is a PasswordSource with a fixed value (from config).
type StaticPassword string

// Password returns the fixed value.
func (p StaticPassword) Password() (string, error) {
	return string(p), nil
}

// CachedPassword asks its source once and reuses the answer for the
// lifetime of the process. A failed read is not cached.
type CachedPassword struct {
	source PasswordSource
	value  string
	cached bool
}

// NewCachedPassword wraps source.
func NewCachedPassword(source PasswordSource) *CachedPassword {
	return &CachedPassword{source: source}
}

// Password returns the cached value, consulting the source on first use.
func (c *CachedPassword) Password() (string, error) {
	if c.cached {
		return c.value, nil
	}
	value, err := c.source.Password()
	if err != nil {
		return "", err
	}
	c.value = value
	c.cached = true
	return value, nil
}
