package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava rate limits:
// - 100 requests per 15 minutes
// - 1000 requests per day

// RateLimiter manages Strava API rate limits
type RateLimiter struct {
	mu sync.Mutex

	shortLimit    int
	shortUsage    int
	shortResetsAt time.Time

	dailyLimit    int
	dailyUsage    int
	dailyResetsAt time.Time

	minInterval time.Duration
	lastRequest time.Time
}

func NewRateLimiter() *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		shortLimit:    100,
		shortResetsAt: now.Add(15 * time.Minute),
		dailyLimit:    1000,
		dailyResetsAt: now.Truncate(24 * time.Hour).Add(24 * time.Hour),
		minInterval:   150 * time.Millisecond,
	}
}

// Wait blocks until a request can be made without exceeding rate limits.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	if now.After(r.shortResetsAt) {
		r.shortUsage = 0
		r.shortResetsAt = now.Add(15 * time.Minute)
	}
	if now.After(r.dailyResetsAt) {
		r.dailyUsage = 0
		r.dailyResetsAt = now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	}

	var waitUntil time.Time
	if r.shortUsage >= r.shortLimit {
		waitUntil = r.shortResetsAt
	}
	if r.dailyUsage >= r.dailyLimit && r.dailyResetsAt.After(waitUntil) {
		waitUntil = r.dailyResetsAt
	}
	if next := r.lastRequest.Add(r.minInterval); next.After(now) && next.After(waitUntil) {
		waitUntil = next
	}

	if waitUntil.After(now) {
		timer := time.NewTimer(waitUntil.Sub(now))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.shortUsage++
	r.dailyUsage++
	r.lastRequest = time.Now()
	return nil
}

// UpdateFromHeaders reads Strava's X-RateLimit headers so local counters
// track actual server-side usage.
func (r *RateLimiter) UpdateFromHeaders(header http.Header) {
	limits := strings.Split(header.Get("X-RateLimit-Limit"), ",")
	usages := strings.Split(header.Get("X-RateLimit-Usage"), ",")
	if len(limits) != 2 || len(usages) != 2 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, err := strconv.Atoi(strings.TrimSpace(limits[0])); err == nil {
		r.shortLimit = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(limits[1])); err == nil {
		r.dailyLimit = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(usages[0])); err == nil {
		r.shortUsage = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(usages[1])); err == nil {
		r.dailyUsage = v
	}
}
