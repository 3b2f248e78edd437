package cache

import (
	"context"
	"testing"
	"time"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("8d5a8c1e-7f0b-4b9e-9c55-0e6f3c2b1a00")
	assert.Equal(t, "refund:case:8d5a8c1e-7f0b-4b9e-9c55-0e6f3c2b1a00", Key(id))
}

func TestNilClientAlwaysMisses(t *testing.T) {
	c := NewRedisCaseCache(nil, time.Minute, logger.NewNopLogger())
	ctx := context.Background()
	kase := &entity.Case{Id: uuid.New()}

	c.Set(ctx, kase)
	got, ok := c.Get(ctx, kase.Id)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NotPanics(t, func() { c.Invalidate(ctx, kase.Id) })
}
