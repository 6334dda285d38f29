package booking

import (
	"github.com/CAJINC/buy-locals-booking/pkg/txmanager"
)

// Переиспользуем интерфейс исполнителя запросов из txmanager.
// Репозиторий работает одинаково поверх *sql.DB и транзакции из контекста.
type DBExecutor = txmanager.DBExecutor
