package bookings

import (
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
// Реализуется *sql.DB, *dbmetrics.DB и обёртками транзакций
type DBExecutor = dbmetrics.DBExecutor
