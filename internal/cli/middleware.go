package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
)

// Execuções acima deste tempo são registradas como lentas
const slowCommandThreshold = 5 * time.Second

// LoggingMiddleware registra início, fim, duração e resultado de cada comando
func LoggingMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) error {
			ctx, correlationID := log.WithCorrelationID(ctx)

			startTime := time.Now()

			if log.IsDevelopment() {
				log.ForContext(ctx).Debug("→ Iniciando comando")
			} else {
				log.ForContext(ctx).WithFields(log.Fields{
					"correlation_id": correlationID,
					"args":           inv.Args,
				}).Info("Comando iniciado")
			}

			err := next(ctx, inv)

			duration := time.Since(startTime)
			logger := log.ForContext(ctx).WithField("duration_ms", duration.Milliseconds())

			switch code := cliErrors.CodeOf(err); {
			case err == nil:
				logger.Infof("✓ Concluído em %s", formatDuration(duration))
			case code == cliErrors.ErrNoData:
				logger.Info("Concluído sem dados")
			case code == cliErrors.ErrInternal || code == cliErrors.ErrDatabaseOperation || code == cliErrors.ErrArtifactWriteFailure:
				logger.WithError(err).Error("✗ Comando finalizado com erro")
			default:
				logger.WithError(err).Warn("✗ Comando rejeitado")
			}

			if duration > slowCommandThreshold {
				logger.Warnf("⚠ Comando lento: %s (%dms)", inv.Name, duration.Milliseconds())
			}

			return err
		}
	}
}

// LogPanicMiddleware converte um panic do comando em erro interno com a pilha registrada
func LogPanicMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, inv *Invocation) (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					stack := make([]byte, 4096)
					stackSize := runtime.Stack(stack, false)
					stackTrace := string(stack[:stackSize])

					if log.IsDevelopment() {
						log.ForContext(ctx).WithField("error", recovered).Error("❌ PANIC na aplicação")
						fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
					} else {
						log.ForContext(ctx).WithFields(log.Fields{
							"panic_error": recovered,
							"stack_trace": stackTrace,
						}).Error("PANIC na aplicação")
					}

					err = domain.NewCRMError(
						fmt.Errorf("panic: %v", recovered),
						cliErrors.ErrInternal,
						"Erro interno ao executar o comando",
					)
				}
			}()

			return next(ctx, inv)
		}
	}
}

// formatDuration formata a duração de forma humana
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d µs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	} else {
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}
