package appointment

import (
	"time"

	"github.com/lavarapido/wash-scheduler/internal/httperr"
)

const maxStorageRetries = 3

// withRetry repete operações de escrita que falharam por conflito
// transitório do datastore, com backoff linear curto. Qualquer outro
// erro sobe imediatamente.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxStorageRetries; attempt++ {
		err = fn()
		if !httperr.IsKind(err, httperr.KindUnavailable) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return err
}
