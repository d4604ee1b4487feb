package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSecretString_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		input    SecretString
		wantJSON string
		wantYAML any
	}{
		{"empty", "", "null", nil},
		{"token", "ghp_0123456789", `"` + SecretStringValue + `"`, SecretStringValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.wantJSON)
			}

			y, err := tt.input.MarshalYAML()
			if err != nil {
				t.Fatalf("MarshalYAML() error = %v", err)
			}
			if y != tt.wantYAML {
				t.Errorf("MarshalYAML() = %v, want %v", y, tt.wantYAML)
			}
		})
	}
}

func TestSecretString_NoLeakage(t *testing.T) {
	const token = "super-secret-fetch-token"

	fetch := FetchConfig{UserAgent: "lsel", AuthToken: token}

	j, err := json.Marshal(fetch)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	y, err := yaml.Marshal(fetch)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	for name, out := range map[string]string{
		"json":   string(j),
		"yaml":   string(y),
		"format": fmt.Sprintf("%v %s", fetch.AuthToken, fetch.AuthToken),
	} {
		if strings.Contains(out, token) {
			t.Errorf("%s output leaks the secret: %s", name, out)
		}
		if !strings.Contains(out, SecretStringValue) {
			t.Errorf("%s output does not mask the secret: %s", name, out)
		}
	}

	if fetch.AuthToken.Reveal() != token {
		t.Errorf("Reveal() = %q, want %q", fetch.AuthToken.Reveal(), token)
	}
}

func TestSecretString_Unmarshal(t *testing.T) {
	var fetch FetchConfig
	if err := yaml.Unmarshal([]byte("auth_token: abc\n"), &fetch); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if fetch.AuthToken.Reveal() != "abc" {
		t.Errorf("AuthToken = %q, want abc", fetch.AuthToken.Reveal())
	}
}
