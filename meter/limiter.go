package meter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"infogen/common"
)

// window is one bound the sliding check evaluates, in evaluation order.
type window struct {
	unit  string
	span  time.Duration
	limit int64
}

// Allow admits or refuses one request under the caller's per-minute and
// per-day rates. The estimate is a sliding window over two fixed counters:
// the current window plus the previous one weighted by how much of it still
// overlaps. Refused requests stay counted, hammering a closed door keeps it
// closed. A broken cache never blocks a request.
func (m *Meter) Allow(ctx context.Context, caller string, plan Plan) error {
	lim := m.LimitsFor(plan)
	now := m.now()
	for _, w := range []window{
		{unit: "minute", span: time.Minute, limit: lim.RatePerMinute},
		{unit: "day", span: 24 * time.Hour, limit: lim.RatePerDay},
	} {
		if w.limit <= 0 {
			continue
		}
		estimate, retry, err := m.observe(ctx, caller, w, now)
		if err != nil {
			m.log.Warn("rate counter unavailable, admitting request",
				zap.String("caller", caller), zap.String("window", w.unit), zap.Error(err))
			return nil
		}
		if retry > 0 {
			m.log.Debug("rate limited",
				zap.String("caller", caller), zap.String("window", w.unit),
				zap.Float64("estimate", estimate), zap.Int64("limit", w.limit))
			return common.RateLimited(retry, "over %d requests per %s, retry in %s", w.limit, w.unit, retry)
		}
	}
	return nil
}

// observe books the request into the window containing now and returns the
// sliding estimate plus how long the caller should wait when it is over the
// bound. The counter keys carry the window index, so expiry is just a TTL of
// two spans and no bookkeeping sweeps old windows.
func (m *Meter) observe(ctx context.Context, caller string, w window, now time.Time) (float64, time.Duration, error) {
	span := int64(w.span / time.Second)
	slot := now.Unix() / span

	cur, err := m.cache.Incr(ctx, rateKey(caller, w.unit, slot), 2*w.span)
	if err != nil {
		return 0, 0, err
	}
	prev, err := m.previous(ctx, rateKey(caller, w.unit, slot-1))
	if err != nil {
		return 0, 0, err
	}

	elapsed := now.Sub(time.Unix(slot*span, 0))
	weight := 1 - float64(elapsed)/float64(w.span)
	estimate := float64(prev)*weight + float64(cur)
	if estimate <= float64(w.limit) {
		return estimate, 0, nil
	}

	// Advise waiting out the rest of the window, or less when enough of the
	// previous window decays before that.
	retry := w.span - elapsed
	if prev > 0 {
		if d := time.Duration((estimate - float64(w.limit)) / float64(prev) * float64(w.span)); d < retry {
			retry = d
		}
	}
	if retry < time.Second {
		retry = time.Second
	}
	return estimate, retry.Round(time.Second), nil
}

// previous reads the finished window's count, zero when it never existed or
// already expired.
func (m *Meter) previous(ctx context.Context, key string) (int64, error) {
	data, ok, err := m.cache.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rate counter %s is not numeric: %w", key, err)
	}
	return n, nil
}

func rateKey(caller, unit string, slot int64) string {
	return "rate:" + caller + ":" + unit + ":" + strconv.FormatInt(slot, 10)
}
