package shortener

import (
	"testing"
)

func TestNewGenerator(t *testing.T) {
	testCases := []struct {
		name         string
		config       Config
		expectedType string
		shouldError  bool
	}{
		{
			name:         "Default config",
			config:       DefaultConfig(),
			expectedType: TypeRandom,
			shouldError:  false,
		},
		{
			name: "Minimum length",
			config: Config{
				Length:   MinLength,
				Alphabet: "ab",
			},
			expectedType: TypeRandom,
			shouldError:  false,
		},
		{
			name: "Length below grammar minimum",
			config: Config{
				Length:   MinLength - 1,
				Alphabet: DefaultAlphabet,
			},
			shouldError: true,
		},
		{
			name: "Empty alphabet",
			config: Config{
				Length:   DefaultLength,
				Alphabet: "",
			},
			shouldError: true,
		},
		{
			name: "Alphabet outside grammar",
			config: Config{
				Length:   DefaultLength,
				Alphabet: "abc-",
			},
			shouldError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			generator, err := NewGenerator(tc.config)

			if tc.shouldError {
				if err == nil {
					t.Error("Expected error, got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewGenerator failed: %v", err)
			}

			if generator == nil {
				t.Fatal("Expected generator, got nil")
			}

			defer generator.Close()

			if generator.Type() != tc.expectedType {
				t.Errorf("Expected generator type %s, got %s", tc.expectedType, generator.Type())
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Length != 10 {
		t.Errorf("Expected default length 10, got %d", config.Length)
	}

	if config.Alphabet != "0123456789abcdefghijklmnopqrstuvwyz_" {
		t.Errorf("Unexpected default alphabet %q", config.Alphabet)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}
