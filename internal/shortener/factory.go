package shortener

import (
	"fmt"
)

// NewGenerator creates a random generator backed by the shared math/rand/v2 source
func NewGenerator(config Config) (Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return NewRandomGenerator(config, nil), nil
}

// Validate ensures every code the config can produce satisfies the shortcode grammar
func (c Config) Validate() error {
	if c.Length < MinLength {
		return fmt.Errorf("generated code length must be at least %d, got: %d", MinLength, c.Length)
	}

	if c.Alphabet == "" {
		return fmt.Errorf("generator alphabet cannot be empty")
	}

	for _, char := range c.Alphabet {
		if !isShortcodeChar(char) {
			return fmt.Errorf("generator alphabet contains invalid character %q", char)
		}
	}

	return nil
}
