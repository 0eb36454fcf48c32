package pool

import (
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/options"
	"go.uber.org/zap"
)

// New builds the Pool implementation selected by kind.
func New(kind options.PoolKind, size int, log *zap.SugaredLogger) (Pool, error) {
	switch kind {
	case options.PoolKindNaive:
		return NewNaive(size)
	case options.PoolKindWorkStealing:
		return NewWorkStealing(size, log)
	case options.PoolKindSharedQueue, "":
		return NewSharedQueue(size, log)
	default:
		return nil, errors.NewFieldFormatError("poolKind", kind, "oneof=naive,shared-queue,work-stealing")
	}
}
