package services

import (
	"context"
	"errors"
	"time"

	"agenthub-gin/internal/graph"

	"go.uber.org/zap"
)

// ===========================================================================
// Graph Mirror Helper
// Mọi write vào graph store đều đi qua helper này: best-effort,
// lỗi được log rồi bỏ qua, relational write đã commit không bị ảnh hưởng
// ===========================================================================

// mirrorTimeout giới hạn thời gian cho một graph write
const mirrorTimeout = 5 * time.Second

// mirrorWrite chạy một graph write theo kiểu advisory
// Relational store là source of truth - graph lỗi không bao giờ propagate
func mirrorWrite(ctx context.Context, logger *zap.Logger, op string, fn func(context.Context) error) {
	mctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	if err := fn(mctx); err != nil {
		if errors.Is(err, graph.ErrUnavailable) {
			logger.Debug("graph mirror skipped",
				zap.String("op", op),
			)
			return
		}
		logger.Warn("graph mirror write failed",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
