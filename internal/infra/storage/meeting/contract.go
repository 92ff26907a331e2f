package meeting

import (
	"github.com/omerbhr129/meety-sub000/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
