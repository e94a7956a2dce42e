package redis

import "fmt"

const (
	// KeyPrefixResource is the prefix for durable resource keys
	KeyPrefixResource = "showcase:resource:"
)

// ResourceKey returns the Redis key for a named resource
func ResourceKey(name string) string {
	return KeyPrefixResource + name
}

// ExtractResourceName extracts the resource name from a Redis key
func ExtractResourceName(key string) (string, error) {
	if len(key) <= len(KeyPrefixResource) {
		return "", fmt.Errorf("invalid resource key: %s", key)
	}
	return key[len(KeyPrefixResource):], nil
}
