package geo

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"math"
	mrand "math/rand/v2"
	"sync"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"
)

// DefaultObfuscationRadiusM is the policy radius for display locations:
// a 50 m draw (100 m diameter) keeps a single device untargetable while the
// point stays useful on a map.
const DefaultObfuscationRadiusM = 50.0

// Obfuscator converts exact coordinates into randomized display coordinates,
// uniformly distributed over a disk. The output is for display only; nothing
// security- or matching-relevant may ever be computed against it.
type Obfuscator struct {
	logger        *slog.Logger
	defaultRadius float64

	// primary draws from crypto/rand. When it fails the draw degrades to the
	// seeded fallback generator and logs, so operators can spot constrained
	// environments. With no fallback either, Obfuscate fails closed.
	primary  func([]byte) (int, error)
	mu       sync.Mutex
	fallback *mrand.Rand
}

func NewObfuscator(logger *slog.Logger, defaultRadiusM float64) *Obfuscator {
	if defaultRadiusM <= 0 {
		defaultRadiusM = DefaultObfuscationRadiusM
	}
	seed := uint64(time.Now().UnixNano())
	return &Obfuscator{
		logger:        logger,
		defaultRadius: defaultRadiusM,
		primary:       rand.Read,
		fallback:      mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Obfuscate draws a display coordinate uniformly from the disk of
// radiusMeters around exact. A radius of 0 or less uses the configured
// default. Uniformity over the disk needs the sqrt correction on the
// distance draw; sampling the distance linearly would pile points up near
// the center.
func (o *Obfuscator) Obfuscate(exact domain.Coordinate, radiusMeters float64) (domain.Coordinate, error) {
	if radiusMeters <= 0 {
		radiusMeters = o.defaultRadius
	}

	u1, err := o.randFloat()
	if err != nil {
		return domain.Coordinate{}, err
	}
	u2, err := o.randFloat()
	if err != nil {
		return domain.Coordinate{}, err
	}

	angle := u1 * 2 * math.Pi
	distance := math.Sqrt(u2) * radiusMeters

	return offset(exact, distance*math.Sin(angle), distance*math.Cos(angle)), nil
}

// randFloat returns a uniform value in [0, 1).
func (o *Obfuscator) randFloat() (float64, error) {
	var buf [8]byte
	if _, err := o.primary(buf[:]); err == nil {
		return float64(binary.LittleEndian.Uint64(buf[:])>>11) / (1 << 53), nil
	} else {
		o.logger.Warn("crypto entropy unavailable, degrading to pseudo-random source",
			slog.Any("error", err))
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fallback == nil {
		return 0, e.ErrEntropyUnavailable
	}
	// Clock jitter is XORed in so rapid successive draws from the same
	// seed do not correlate.
	v := o.fallback.Uint64() ^ uint64(time.Now().UnixNano())
	return float64(v>>11) / (1 << 53), nil
}
