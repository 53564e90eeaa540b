package utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/mmdatafocus/procurement_backend/appctx"
)

var (
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
	ContextKeyRole          = appctx.ContextKeyRole
)

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

// GetRoleFromContext returns the acting department, if the request declared one.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyRole)
}

func SetRoleInContext(ctx context.Context, role string) context.Context {
	return appctx.Set(ctx, ContextKeyRole, role)
}

const CorrelationIdHeader = "x-correlation-id"

func NewCorrelationId() string {
	return uuid.NewString()
}
