package oauthstate

import (
	"context"
	"fmt"

	"github.com/ffaiyaz23/boltgo/response"
	"github.com/lithammer/shortuuid/v4"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdStore persists state tokens in etcd with a lease-backed TTL, and
// consumes them with a single linearizable transaction: compare that the
// key still exists, then delete it. That gives the "at most one
// concurrent Consume succeeds" invariant across processes for free,
// rather than needing an application-level lock.
type EtcdStore struct {
	client     *clientv3.Client
	keyPrefix  string
	expiration int64 // seconds, used as the lease TTL
}

// NewEtcdStore wraps an existing *clientv3.Client. expirationSeconds is the
// lease TTL for each issued state (DefaultExpiration if zero).
func NewEtcdStore(client *clientv3.Client, keyPrefix string, expirationSeconds int64) *EtcdStore {
	if keyPrefix == "" {
		keyPrefix = "/boltgo/oauthstate/"
	}
	if expirationSeconds <= 0 {
		expirationSeconds = int64(DefaultExpiration.Seconds())
	}
	return &EtcdStore{client: client, keyPrefix: keyPrefix, expiration: expirationSeconds}
}

func (s *EtcdStore) key(state string) string {
	return s.keyPrefix + state
}

func (s *EtcdStore) Issue(ctx context.Context, _ *response.Response) (string, error) {
	state := shortuuid.New()

	lease, err := s.client.Grant(ctx, s.expiration)
	if err != nil {
		return "", fmt.Errorf("oauthstate: grant lease: %w", err)
	}
	if _, err := s.client.Put(ctx, s.key(state), "1", clientv3.WithLease(lease.ID)); err != nil {
		return "", fmt.Errorf("oauthstate: put: %w", err)
	}
	return state, nil
}

func (s *EtcdStore) Consume(ctx context.Context, state string) (bool, error) {
	key := s.key(state)
	txn := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), ">", 0)).
		Then(clientv3.OpDelete(key))

	resp, err := txn.Commit()
	if err != nil {
		return false, fmt.Errorf("oauthstate: consume txn: %w", err)
	}
	return resp.Succeeded, nil
}
