package databases

import (
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Paginate turns a 1-based page number and page size into find options
type Paginate struct {
	limit int64
	page  int64
}

// NewPaginate clamps page and limit to at least 1, and page so that the
// skip never overflows
func NewPaginate(limit, page int) *Paginate {
	l, p := int64(limit), int64(page)
	if l < 1 {
		l = 1
	}
	if p < 1 {
		p = 1
	}
	if p > math.MaxInt64/l {
		p = math.MaxInt64 / l
	}
	return &Paginate{
		limit: l,
		page:  p,
	}
}

// Options returns find options skipping the earlier pages, newest first
func (mp *Paginate) Options() *options.FindOptions {
	skip := mp.page*mp.limit - mp.limit
	return options.Find().
		SetLimit(mp.limit).
		SetSkip(skip).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
