package helpers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Paginate is a limit/skip window over a sorted result set. A zero Limit
// means no limit.
type Paginate struct {
	Limit int64
	Skip  int64
}

func absInt(x int64) int64 {
	if x == math.MinInt64 {
		return math.MaxInt64
	}
	if x < 0 {
		return -x
	}
	return x
}

func NewPaginate(limit, skip, maxLimit int64) Paginate {
	limit, skip = absInt(limit), absInt(skip)
	if maxLimit > 0 && (limit == 0 || limit > maxLimit) {
		limit = maxLimit
	}
	return Paginate{Limit: limit, Skip: skip}
}

// ParsePaginate reads the limit and skip query parameters.
func ParsePaginate(q url.Values, defaultLimit, maxLimit int64) (Paginate, error) {
	limit, err := queryInt(q, "limit", defaultLimit)
	if err != nil {
		return Paginate{}, err
	}
	skip, err := queryInt(q, "skip", 0)
	if err != nil {
		return Paginate{}, err
	}
	return NewPaginate(limit, skip, maxLimit), nil
}

func queryInt(q url.Values, key string, def int64) (int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}

func (p Paginate) BuildFindOptions(sort bson.D) *options.FindOptions {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if p.Limit > 0 {
		opts.SetLimit(p.Limit)
	}
	if p.Skip > 0 {
		opts.SetSkip(p.Skip)
	}
	return opts
}

// Bounds applies the window to a slice of length n and returns the half-open
// index range to keep.
func (p Paginate) Bounds(n int) (int, int) {
	start := n
	if p.Skip < int64(n) {
		start = int(max(p.Skip, 0))
	}
	end := n
	if p.Limit > 0 && p.Limit < int64(n-start) {
		end = start + int(p.Limit)
	}
	return start, end
}
