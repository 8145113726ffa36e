package config

// SecretStringValue replaces secret values in dumped configuration.
const SecretStringValue = "<secret>"

// SecretString holds credential-bearing settings, the redis URL with its
// embedded password for one. It marshals as a fixed marker so configuration
// dumps and debug reports never carry the real value.
type SecretString string

// MarshalJSON emits the redaction marker instead of the value, null when empty.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

// MarshalYAML emits the redaction marker instead of the value, null when empty.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
