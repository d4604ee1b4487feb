package config

// SecretStringValue replaces secrets in dumps and logs.
const SecretStringValue = "<secret>"

// SecretString holds credentials (fetch tokens) which must never be visible
// in configuration dumps, debug reports or logs. Use Reveal to get the value.
type SecretString string

// Reveal returns actual secret value.
func (s SecretString) Reveal() string {
	return string(s)
}

// String implements fmt.Stringer, so secrets do not leak through %v or
// zap.Stringer.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

// MarshalJSON marshals SecretString to JSON making sure that actual value is not visible.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

// MarshalYAML marshals SecretString to YAML making sure that actual value is not visible.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
