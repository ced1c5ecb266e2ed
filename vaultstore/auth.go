package vaultstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/vault/api"
)

// DefaultKubernetesTokenPath is where Kubernetes mounts the service account
// token inside a pod.
const DefaultKubernetesTokenPath = "/var/run/secrets/kubernetes.io/serviceaccount/token"

// ErrNoAuthInfo is returned when a login succeeds but the store returns no
// authentication info.
var ErrNoAuthInfo = errors.New("vaultstore: login returned no auth info")

// AuthMethod obtains a Vault token and installs it on the client. Methods
// are invoked lazily on the first credential-requiring call and again after
// every invalidation.
type AuthMethod func(ctx context.Context, client *api.Client) error

// TokenAuth authenticates with a pre-issued static token.
func TokenAuth(token string) AuthMethod {
	return func(_ context.Context, client *api.Client) error {
		if token == "" {
			return errors.New("vaultstore: token cannot be empty")
		}
		client.SetToken(token)
		return nil
	}
}

// AppRoleAuth authenticates using the AppRole auth method. The mount
// defaults to "approle" when empty.
func AppRoleAuth(mount, roleID, secretID string) AuthMethod {
	if mount == "" {
		mount = "approle"
	}

	return func(ctx context.Context, client *api.Client) error {
		secret, err := client.Logical().WriteWithContext(ctx,
			fmt.Sprintf("auth/%s/login", mount),
			map[string]interface{}{
				"role_id":   roleID,
				"secret_id": secretID,
			},
		)
		if err != nil {
			return fmt.Errorf("approle login: %w", err)
		}
		if secret == nil || secret.Auth == nil {
			return ErrNoAuthInfo
		}

		client.SetToken(secret.Auth.ClientToken)
		return nil
	}
}

// KubernetesAuth authenticates using a Kubernetes service account token.
// The mount defaults to "kubernetes" and the token path to
// DefaultKubernetesTokenPath when empty.
func KubernetesAuth(mount, role, tokenPath string) AuthMethod {
	if mount == "" {
		mount = "kubernetes"
	}
	if tokenPath == "" {
		tokenPath = DefaultKubernetesTokenPath
	}

	return func(ctx context.Context, client *api.Client) error {
		jwt, err := os.ReadFile(tokenPath)
		if err != nil {
			return fmt.Errorf("read service account token: %w", err)
		}

		secret, err := client.Logical().WriteWithContext(ctx,
			fmt.Sprintf("auth/%s/login", mount),
			map[string]interface{}{
				"role": role,
				"jwt":  string(jwt),
			},
		)
		if err != nil {
			return fmt.Errorf("kubernetes login: %w", err)
		}
		if secret == nil || secret.Auth == nil {
			return ErrNoAuthInfo
		}

		client.SetToken(secret.Auth.ClientToken)
		return nil
	}
}
