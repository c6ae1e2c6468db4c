package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wenlng/go-captcha/v2/rotate"
	xdraw "golang.org/x/image/draw"
)

// CaptchaService guards the admin login with a rotate captcha.
//
// Generate returns a challenge ID and two base64 images; the client rotates the
// thumb and submits the angle. Verify compares it with the stored target angle
// within the configured tolerance. A challenge is consumed by its first
// verification attempt, successful or not.
type CaptchaService interface {
	GenerateRotate(ctx context.Context) (*RotateChallenge, error)
	VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool
}

type RotateChallenge struct {
	ID                string
	MasterImageBase64 string
	ThumbImageBase64  string
}

// ChallengeStore keeps captcha target angles until they expire or are consumed
type ChallengeStore interface {
	Set(ctx context.Context, id string, angle int, ttl time.Duration) error
	// Take returns and deletes the stored angle
	Take(ctx context.Context, id string) (int, bool, error)
}

type captchaServiceImpl struct {
	rotator rotate.Captcha
	store   ChallengeStore
	ttl     time.Duration
	padding int
}

// NewCaptchaServiceRotate constructs a CaptchaService using rotate mode.
// padding is the accepted angle difference in degrees; imgSizePx is the square image size.
func NewCaptchaServiceRotate(store ChallengeStore, ttl time.Duration, padding int, imgSizePx int) (CaptchaService, error) {
	if store == nil {
		return nil, errors.New("captcha challenge store is required")
	}
	if imgSizePx <= 0 {
		imgSizePx = 220
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	builder := rotate.NewBuilder(
		rotate.WithImageSquareSize(imgSizePx),
	)
	builder.SetResources(
		rotate.WithImages(generateRotateBackgrounds(3, imgSizePx)),
	)

	return &captchaServiceImpl{
		rotator: builder.Make(),
		store:   store,
		ttl:     ttl,
		padding: padding,
	}, nil
}

func (s *captchaServiceImpl) GenerateRotate(ctx context.Context) (*RotateChallenge, error) {
	captData, err := s.rotator.Generate()
	if err != nil {
		return nil, err
	}

	block := captData.GetData()
	if block == nil {
		return nil, errors.New("captcha generator returned no data")
	}

	masterB64, err := captData.GetMasterImage().ToBase64()
	if err != nil {
		return nil, err
	}
	thumbB64, err := captData.GetThumbImage().ToBase64()
	if err != nil {
		return nil, err
	}

	challengeID := uuid.New().String()
	if err := s.store.Set(ctx, challengeID, block.Angle, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store captcha challenge: %w", err)
	}

	return &RotateChallenge{
		ID:                challengeID,
		MasterImageBase64: masterB64,
		ThumbImageBase64:  thumbB64,
	}, nil
}

func (s *captchaServiceImpl) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	target, ok, err := s.store.Take(ctx, challengeID)
	if err != nil || !ok {
		return false
	}

	return rotate.Validate(int(math.Round(userAngle)), target, s.padding)
}

// --- Redis-backed store ---

type redisChallengeStore struct {
	client *redis.Client
	prefix string
}

func NewRedisChallengeStore(client *redis.Client) ChallengeStore {
	return &redisChallengeStore{client: client, prefix: "captcha:rotate:"}
}

func (s *redisChallengeStore) Set(ctx context.Context, id string, angle int, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+id, angle, ttl).Err()
}

func (s *redisChallengeStore) Take(ctx context.Context, id string) (int, bool, error) {
	val, err := s.client.GetDel(ctx, s.prefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	angle, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return angle, true, nil
}

// --- In-memory store with TTL ---

type storeEntry struct {
	targetAngle int
	expiresAt   time.Time
}

type memoryChallengeStore struct {
	mu sync.Mutex
	m  map[string]storeEntry
}

// NewMemoryChallengeStore returns a process-local store; expired entries are pruned on write
func NewMemoryChallengeStore() ChallengeStore {
	return &memoryChallengeStore{m: make(map[string]storeEntry)}
}

func (s *memoryChallengeStore) Set(ctx context.Context, id string, angle int, ttl time.Duration) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range s.m {
		if now.After(v.expiresAt) {
			delete(s.m, k)
		}
	}
	s.m[id] = storeEntry{targetAngle: angle, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryChallengeStore) Take(ctx context.Context, id string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		return 0, false, nil
	}
	delete(s.m, id)
	if time.Now().After(e.expiresAt) {
		return 0, false, nil
	}
	return e.targetAngle, true, nil
}

// --- Utility: generate simple background images programmatically ---

func generateRotateBackgrounds(n int, size int) []image.Image {
	if n <= 0 {
		n = 1
	}
	imgs := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		imgs = append(imgs, newNoiseGradientImage(size))
	}
	return imgs
}

// newNoiseGradientImage paints a coarse noisy gradient and scales it up so the noise reads as texture
func newNoiseGradientImage(size int) image.Image {
	small := size / 4
	if small < 8 {
		small = 8
	}

	src := image.NewRGBA(image.Rect(0, 0, small, small))
	for y := 0; y < small; y++ {
		for x := 0; x < small; x++ {
			dx := float64(x - small/2)
			dy := float64(y - small/2)
			t := math.Sqrt(dx*dx+dy*dy) / float64(small/2)
			if t > 1 {
				t = 1
			}
			base := uint8(200 - int(150*t))
			noise := uint8(rand.Intn(30))
			src.Set(x, y, color.RGBA{R: base + noise/3, G: base, B: 255 - base/2, A: 255})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	band := image.Rect(size/2, size/3, size/2+size/3, size/3+size/10)
	xdraw.Draw(dst, band, &image.Uniform{C: color.RGBA{A: 24}}, image.Point{}, xdraw.Over)
	return dst
}
