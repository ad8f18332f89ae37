package analytics

import (
	"context"
	"time"
)

// ReportCache puerto del caché de reportes (Redis). Get escribe en dest y
// devuelve found=false en miss. Un caché caído no debe tumbar el reporte:
// los casos de uso degradan a lectura directa de la DB.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
