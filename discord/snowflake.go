package discord

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Epoch is the service epoch in Unix milliseconds (2015-01-01T00:00:00Z).
// Snowflake timestamps count milliseconds from this point.
const Epoch int64 = 1420070400000

// Snowflake is a 64-bit entity identifier encoding approximate creation
// order. On the wire it is a decimal string; numeric payloads are accepted
// when decoding for compatibility with older producers.
type Snowflake int64

// String returns the decimal form used on the wire.
func (s Snowflake) String() string {
	return strconv.FormatInt(int64(s), 10)
}

// IsZero reports whether the id is unset.
func (s Snowflake) IsZero() bool { return s == 0 }

// Time returns the creation time encoded in the id.
func (s Snowflake) Time() time.Time {
	return time.UnixMilli(int64(s)>>timestampShift + Epoch)
}

// MarshalJSON encodes the id as a decimal string.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts both string and number forms.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("mockcord: invalid snowflake %q: %w", data, err)
	}
	*s = Snowflake(v)
	return nil
}

// ParseSnowflake parses the decimal string form.
func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("mockcord: invalid snowflake %q: %w", s, err)
	}
	return Snowflake(v), nil
}

// Id bit layout: 42-bit millisecond timestamp, 10-bit worker, 12-bit
// per-millisecond increment.
const (
	timestampShift = 22
	workerShift    = 12
	maxIncrement   = 1<<12 - 1
)

// Generator mints unique snowflakes. Ids minted by one generator are
// strictly increasing, so they double as creation-order proxies.
type Generator struct {
	mu        sync.Mutex
	worker    int64
	last      int64 // last timestamp seen, ms since Epoch
	increment int64
}

// NewGenerator returns a generator for the given worker id (low 10 bits).
func NewGenerator(worker int64) *Generator {
	return &Generator{worker: worker & (1<<10 - 1)}
}

// Next returns the next unique id.
func (g *Generator) Next() Snowflake {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli() - Epoch
	if now <= g.last {
		g.increment++
		if g.increment > maxIncrement {
			// Spill into the next millisecond rather than blocking.
			g.last++
			g.increment = 0
		}
	} else {
		g.last = now
		g.increment = 0
	}
	return Snowflake(g.last<<timestampShift | g.worker<<workerShift | g.increment)
}
