package sharing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExistsFunc reports whether a token is currently held by any note.
// Retired tokens drop out of this set when sharing is disabled; they become
// eligible for reissue, which is an accepted trade-off since a cleared token
// no longer resolves anywhere.
type ExistsFunc func(ctx context.Context, token string) (bool, error)

// ErrExhausted is returned when even the high-entropy fallback collides,
// which should never happen outside of a broken ExistsFunc.
var ErrExhausted = errors.New("sharing: could not issue a unique token")

const defaultMaxAttempts = 10

// Issuer produces public share tokens that are unique among all
// currently-issued tokens at the moment of issuance. The caller is
// responsible for persisting the token; uniqueness against concurrent
// issuers relies on the surrounding write being transactional.
type Issuer struct {
	exists      ExistsFunc
	maxAttempts int
	now         func() time.Time
}

func NewIssuer(exists ExistsFunc) *Issuer {
	return &Issuer{
		exists:      exists,
		maxAttempts: defaultMaxAttempts,
		now:         time.Now,
	}
}

// Issue generates a token of the shape share-<unix-nano>-<random suffix> and
// retries on collision. After maxAttempts it falls back to a 128-bit random
// identifier so the loop always terminates.
func (i *Issuer) Issue(ctx context.Context) (string, error) {
	for attempt := 0; attempt < i.maxAttempts; attempt++ {
		candidate, err := i.candidate()
		if err != nil {
			return "", err
		}

		taken, err := i.exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	fallback := fmt.Sprintf("share-%s", uuid.NewString())
	taken, err := i.exists(ctx, fallback)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrExhausted
	}
	return fallback, nil
}

func (i *Issuer) candidate() (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("share-%d-%s", i.now().UnixNano(), hex.EncodeToString(suffix)), nil
}
