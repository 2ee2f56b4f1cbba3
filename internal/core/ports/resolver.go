// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/fastboot/internal/core/domain"
)

// ModuleResolver resolves module requests to absolute file paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	// Resolve returns the absolute path the request refers to when issued by caller.
	// A nil caller means the calling context is unknown.
	// It returns an error wrapping domain.ErrModuleNotFound when the request cannot be satisfied.
	Resolve(ctx context.Context, request string, caller *domain.Caller) (string, error)
}
