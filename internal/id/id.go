package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	// ulid.Monotonic keeps IDs generated within the same millisecond increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string (time-sortable identifier).
//
// Loan ids are never reused, so the monotonic reader is shared behind a
// mutex rather than handed out per caller.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Only possible if entropy fails or the monotonic counter overflows.
		panic(err)
	}
	return id.String()
}

// Parse accepts a ULID or a UUID (saves written by older builds used GUIDs)
// and returns it in canonical form. The all-zero value of either format is
// rejected, as is anything else.
func Parse(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if u, err := ulid.ParseStrict(s); err == nil {
		if u == (ulid.ULID{}) {
			return "", false
		}
		return u.String(), true
	}

	if g, err := uuid.Parse(s); err == nil {
		if g == uuid.Nil {
			return "", false
		}
		return g.String(), true
	}
	return "", false
}

// Short returns the first eight characters of an id for display.
func Short(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
